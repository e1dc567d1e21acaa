// Package config holds the YAML configuration of the game server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvGameConfig overrides the game server config path.
const EnvGameConfig = "MS2_GAME_CONFIG"

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ConfigPath returns the path from EnvGameConfig, or fallback if unset.
func ConfigPath(fallback string) string {
	if path := os.Getenv(EnvGameConfig); path != "" {
		return path
	}
	return fallback
}

// load decodes a YAML file over cfg. A missing file leaves cfg untouched.
func load(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
