package core

// Config is the board section of the server configuration
type Config struct {
	AdminAddress string   `yaml:"adminAddress"`
	AdminTokens  []string `yaml:"adminTokens"`
}
