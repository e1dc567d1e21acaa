package config

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"
)

// DataConfig points at the static reference data.
type DataConfig struct {
	NpcFile string `yaml:"npc_file"` // npc catalog (.yaml or .yaml.zst)
	MapDir  string `yaml:"map_dir"`  // one level data file per map

	// Load additional NPC templates from the database on top of NpcFile.
	NpcFromDatabase bool `yaml:"npc_from_database"`
}

// FieldConfig tunes running fields.
type FieldConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval"`     // default: 50ms
	ItemLifetime    time.Duration `yaml:"item_lifetime"`     // default: 120s, 0 = forever
	EmptyFieldDelay time.Duration `yaml:"empty_field_delay"` // default: 5m
	PreloadMaps     []int32       `yaml:"preload_maps"`      // shared instances created at startup
}

// GameServer holds all configuration for the game server.
type GameServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Database
	Database DatabaseConfig `yaml:"database"`

	Data  DataConfig  `yaml:"data"`
	Field FieldConfig `yaml:"field"`

	// Write queue / timeouts
	WriteTimeout  time.Duration `yaml:"write_timeout"`   // per-write deadline (default: 5s)
	ReadTimeout   time.Duration `yaml:"read_timeout"`    // idle client disconnect (default: 120s)
	SendQueueSize int           `yaml:"send_queue_size"` // per-session outbox capacity (default: 256)
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		BindAddress: "0.0.0.0",
		Port:        7777,
		LogLevel:    "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "ms2",
			Password: "ms2",
			DBName:   "ms2",
			SSLMode:  "disable",
		},
		Data: DataConfig{
			NpcFile: "data/npcs.yaml",
			MapDir:  "data/maps",
		},
		Field: FieldConfig{
			TickInterval:    50 * time.Millisecond,
			ItemLifetime:    120 * time.Second,
			EmptyFieldDelay: 5 * time.Minute,
		},
		WriteTimeout:  5 * time.Second,
		ReadTimeout:   120 * time.Second,
		SendQueueSize: 256,
	}
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c GameServer) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Field.TickInterval <= 0 {
		return fmt.Errorf("field.tick_interval must be positive, got %s", c.Field.TickInterval)
	}
	if c.Field.ItemLifetime < 0 {
		return fmt.Errorf("field.item_lifetime must not be negative, got %s", c.Field.ItemLifetime)
	}
	if c.SendQueueSize <= 0 {
		return fmt.Errorf("send_queue_size must be positive, got %d", c.SendQueueSize)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Addr returns the listen address (host:port).
func (c GameServer) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// SlogLevel parses LogLevel.
func (c GameServer) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
