package main

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/wallet"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	config, err := loadConfig("")
	if assert.NoError(t, err) {
		assert.Equal(t, core.DefaultEndpoint, config.Endpoint)
		assert.Equal(t, core.DefaultAdminAddress, config.AdminAddress)
		assert.Equal(t, ".", config.ExportDir)
		assert.Equal(t, "injected", config.Wallet.Kind)
		assert.Nil(t, config.Wallet.Chain())
	}

	timeout, err := config.RequestTimeout()
	assert.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
endpoint: "http://localhost:8000"
exportDir: "/tmp/exports"
timeout: "3s"
wallet:
  keystoreDir: "/tmp/keystore"
  account: "0x71562b71999873DB5b286dF957af199Ec94617F7"
  rpcURL: "http://localhost:8545"
  chainID: 5
`)

	config, err := loadConfig(path)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "http://localhost:8000", config.Endpoint)
	assert.Equal(t, "/tmp/exports", config.ExportDir)
	assert.Equal(t, "keystore", config.Wallet.Kind)
	assert.Equal(t, core.DefaultAdminAddress, config.AdminAddress)

	timeout, err := config.RequestTimeout()
	assert.NoError(t, err)
	assert.Equal(t, 3*time.Second, timeout)

	chain := config.Wallet.Chain()
	if assert.NotNil(t, chain) {
		assert.Equal(t, "http://localhost:8545", chain.RPCURL)
		assert.Equal(t, big.NewInt(5), chain.ID)
	}
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	config := Config{Timeout: "soon"}
	_, err := config.RequestTimeout()
	assert.Error(t, err)
}

func TestWalletChainMainnet(t *testing.T) {
	chain := WalletConfig{RPCURL: "http://localhost:8545"}.Chain()
	if assert.NotNil(t, chain) {
		assert.Equal(t, wallet.Mainnet("http://localhost:8545"), *chain)
	}
}
