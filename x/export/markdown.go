package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dogechoco/messageboard/core"
)

// MarkdownExporter writes a readable digest of the list
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(messages []core.Message, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("# Received messages\n\n")

	if len(messages) == 0 {
		sb.WriteString("No messages yet.\n")
	}

	for _, m := range messages {
		sb.WriteString(fmt.Sprintf("## %s\n\n", m.Timestamp.UTC().Format(time.RFC1123)))
		sb.WriteString(fmt.Sprintf("**%s:**\n\n", m.WalletAddress))
		for _, line := range strings.Split(m.Message, "\n") {
			sb.WriteString("> " + line + "\n")
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
