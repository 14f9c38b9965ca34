package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/stretchr/testify/assert"

	"github.com/dogechoco/messageboard/core"
)

var pivot = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var sample = []core.Message{
	{WalletAddress: "0x4794d0B88F5579117Ca8e7ab8FF8b5f95DbD0213", Message: "second\nline", Timestamp: pivot.Add(time.Minute)},
	{WalletAddress: "0x9b3A0f6C6e9a6C0f3b1f1e0a3E2D2c1B0a9f8E7d", Message: "first", Timestamp: pivot},
}

func TestNewExporter(t *testing.T) {
	for format, ext := range map[string]string{
		"json":     "json",
		"jsonl":    "jsonl",
		"yaml":     "yaml",
		"yml":      "yaml",
		"md":       "md",
		"markdown": "md",
	} {
		e, err := NewExporter(format)
		if assert.NoError(t, err, format) {
			assert.Equal(t, ext, e.Extension())
		}
	}

	_, err := NewExporter("csv")
	assert.Error(t, err)
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	err := (&JSONExporter{}).Export(sample, &buf)
	assert.NoError(t, err)

	var decoded []core.Message
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "second\nline", decoded[0].Message)

	buf.Reset()
	assert.NoError(t, (&JSONExporter{}).Export(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONLExporter(t *testing.T) {
	var buf bytes.Buffer
	err := (&JSONLExporter{}).Export(sample, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"message":"first"`)
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	err := (&YAMLExporter{}).Export(sample, &buf)
	assert.NoError(t, err)

	var decoded []yamlMessage
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "2024-05-01T12:01:00Z", decoded[0].Timestamp)
	assert.Equal(t, "first", decoded[1].Message)
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	err := (&MarkdownExporter{}).Export(sample, &buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Received messages"))
	assert.Contains(t, out, "> second\n> line\n")
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))

	buf.Reset()
	assert.NoError(t, (&MarkdownExporter{}).Export(nil, &buf))
	assert.Contains(t, buf.String(), "No messages yet.")
}
