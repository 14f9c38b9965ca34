package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dogechoco/messageboard/core"
)

func TestConfigLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
server:
  dsn: "host=localhost user=postgres"
  redisAddr: "localhost:6379"
  memcachedAddr: "localhost:11211"
board:
  adminTokens:
    - "0xabc"
`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	var config Config
	err = config.Load(path)
	if assert.NoError(t, err) {
		assert.Equal(t, ":8000", config.Server.Listen)
		assert.Equal(t, "localhost:6379", config.Server.RedisAddr)
		assert.Equal(t, core.DefaultAdminAddress, config.Board.AdminAddress)
		assert.Equal(t, []string{"0xabc"}, config.Board.AdminTokens)
	}

	assert.Error(t, (&Config{}).Load(filepath.Join(t.TempDir(), "missing.yaml")))
}
