package appconfig

import (
	"os"
	"path/filepath"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	WorkspaceRoot string         `mapstructure:"workspace_root" yaml:"workspace_root"`
	StateDir      string         `mapstructure:"state_dir" yaml:"state_dir"`
	HTTP          HTTPConfig     `mapstructure:"http" yaml:"http"`
	Terminal      TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	AI            AIConfig       `mapstructure:"ai" yaml:"ai"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// HTTPConfig configures the HTTP server the editor shell talks to.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// TerminalConfig controls command sandbox behavior.
type TerminalConfig struct {
	CommandTimeoutSeconds int `mapstructure:"command_timeout_seconds" yaml:"command_timeout_seconds"`
}

// AIConfig configures the assistant provider.
type AIConfig struct {
	Model           string `mapstructure:"model" yaml:"model"`
	APIKeyEnv       string `mapstructure:"api_key_env" yaml:"api_key_env"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		WorkspaceRoot: filepath.Join(home, ".pandacode", "workspace"),
		StateDir:      filepath.Join(home, ".pandacode", "state"),
		HTTP: HTTPConfig{
			Addr: ":27500",
		},
		Terminal: TerminalConfig{
			CommandTimeoutSeconds: 30,
		},
		AI: AIConfig{
			Model:           "gemini-2.5-flash",
			APIKeyEnv:       "GEMINI_API_KEY",
			CredentialsFile: filepath.Join(home, ".pandacode", "state", "config.json"),
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pandacode", "config.yaml"), nil
}
