// Package config handles owui-tools configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./owui-tools.yaml, ~/.config/owui-tools/config.yaml,
// /etc/owui-tools/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"owui-tools.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "owui-tools", "config.yaml"))
	}

	paths = append(paths, "/etc/owui-tools/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all owui-tools configuration.
type Config struct {
	Listen    ListenConfig  `yaml:"listen"`
	Gateway   GatewayConfig `yaml:"gateway"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"` // text or json
}

// ListenConfig defines the API server settings.
type ListenConfig struct {
	Address string `yaml:"address"` // Bind address (default: "" = all interfaces)
	Port    int    `yaml:"port"`
}

// GatewayConfig defines the MCP gateway connection and tool policy.
type GatewayConfig struct {
	// URL is the gateway's MCP endpoint, e.g. http://litellm.litellm:4000/mcp/.
	URL string `yaml:"url"`
	// ServerGroup routes requests to a backend server group via the
	// x-mcp-servers header.
	ServerGroup string `yaml:"server_group"`
	// ReadOnly blocks all write tools. Defaults to true; write access
	// must be granted deliberately.
	ReadOnly bool `yaml:"read_only"`
	// EnabledTools restricts discovery to the named tools.
	// Empty means every discovered tool is exposed.
	EnabledTools []string `yaml:"enabled_tools"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	// Pre-seed defaults that must survive an absent key. yaml.Unmarshal
	// only touches fields present in the document, so read_only stays
	// true unless the file says otherwise.
	cfg := &Config{
		Listen:  ListenConfig{Port: 8080},
		Gateway: GatewayConfig{ReadOnly: true},
	}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Listen: ListenConfig{Port: 8080},
		Gateway: GatewayConfig{
			URL:         "http://litellm.litellm:4000/mcp/",
			ServerGroup: "jira_stage",
			ReadOnly:    true,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}
