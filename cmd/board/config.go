package main

import (
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/wallet"
)

const ConfigEnv = "MESSAGEBOARD_CLIENT_CONFIG"

type Config struct {
	Endpoint     string       `yaml:"endpoint"`
	AdminAddress string       `yaml:"adminAddress"`
	ExportDir    string       `yaml:"exportDir"`
	Timeout      string       `yaml:"timeout"`
	Wallet       WalletConfig `yaml:"wallet"`
}

type WalletConfig struct {
	Kind        string `yaml:"kind"`
	KeystoreDir string `yaml:"keystoreDir"`
	Account     string `yaml:"account"`
	KeyFile     string `yaml:"keyFile"`
	RPCURL      string `yaml:"rpcURL"`
	ChainID     int64  `yaml:"chainID"`
}

// Load loads config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open configuration file")
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(c)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration file")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = core.DefaultEndpoint
	}
	if c.AdminAddress == "" {
		c.AdminAddress = core.DefaultAdminAddress
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.Wallet.Kind == "" {
		if c.Wallet.KeystoreDir != "" {
			c.Wallet.Kind = "keystore"
		} else {
			c.Wallet.Kind = "injected"
		}
	}
}

// RequestTimeout parses Timeout, falling back to 10 seconds.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrap(err, "invalid timeout")
	}
	return d, nil
}

// Chain returns the network the keystore wallet checks against, if any.
func (w WalletConfig) Chain() *wallet.Chain {
	if w.RPCURL == "" {
		return nil
	}
	chain := wallet.Mainnet(w.RPCURL)
	if w.ChainID != 0 && w.ChainID != 1 {
		chain.Name = "custom"
		chain.ID = big.NewInt(w.ChainID)
	}
	return &chain
}

func defaultConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "messageboard", "config.yaml")
}

// loadConfig reads the config file. A missing file at the default location
// means defaults; a missing file given explicitly is an error.
func loadConfig(explicit string) (Config, error) {
	var config Config

	path := explicit
	if path == "" {
		path = defaultConfigPath()
	}

	if path != "" {
		err := config.Load(path)
		if err != nil {
			if explicit != "" || !os.IsNotExist(errors.Cause(err)) {
				return config, err
			}
		}
	}

	config.applyDefaults()
	return config, nil
}
