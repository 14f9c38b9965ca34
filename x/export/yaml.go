package export

import (
	"io"
	"time"

	"github.com/go-yaml/yaml"

	"github.com/dogechoco/messageboard/core"
)

type yamlMessage struct {
	WalletAddress string `yaml:"walletAddress"`
	Message       string `yaml:"message"`
	Timestamp     string `yaml:"timestamp"`
	Signature     string `yaml:"signature,omitempty"`
}

// YAMLExporter writes the list as a YAML sequence
type YAMLExporter struct{}

func (e *YAMLExporter) Export(messages []core.Message, w io.Writer) error {
	rows := make([]yamlMessage, len(messages))
	for i, m := range messages {
		rows[i] = yamlMessage{
			WalletAddress: m.WalletAddress,
			Message:       m.Message,
			Timestamp:     m.Timestamp.UTC().Format(time.RFC3339),
			Signature:     m.Signature,
		}
	}

	data, err := yaml.Marshal(rows)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
