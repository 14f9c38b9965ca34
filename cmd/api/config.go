package main

import (
	"os"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/dogechoco/messageboard/core"
)

type Config struct {
	Server Server      `yaml:"server"`
	Board  core.Config `yaml:"board"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
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

	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Board.AdminAddress == "" {
		c.Board.AdminAddress = core.DefaultAdminAddress
	}

	return nil
}
