package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/economy"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Terrain TerrainConfig `mapstructure:"terrain"`
}

// TerrainConfig holds the per-player terrain budgets for the placement phase
type TerrainConfig struct {
	MaxMountains int `mapstructure:"max_mountains"`
	MaxWater     int `mapstructure:"max_water"`
}

// ServerConfig holds the match server configuration
type ServerConfig struct {
	Listen           ListenConfig    `mapstructure:"listen"`
	ProtocolID       int             `mapstructure:"protocol_id"`
	TickIntervalMS   int             `mapstructure:"tick_interval_ms"`
	InboundQueueSize int             `mapstructure:"inbound_queue_size"`
	ClientSendBuffer int             `mapstructure:"client_send_buffer"`
	RateLimit        RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel         string          `mapstructure:"log_level"`
	LogFormat        string          `mapstructure:"log_format"`
}

// ListenConfig is the address the WebSocket listener binds
type ListenConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RateLimitConfig bounds how fast one connection may send intents
type RateLimitConfig struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
}

// AdminConfig holds gRPC admin plane configuration
type AdminConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	DumpBoard bool `mapstructure:"dump_board"`
}

// TickInterval returns the loop tick as a duration
func (s ServerConfig) TickInterval() time.Duration {
	return time.Duration(s.TickIntervalMS) * time.Millisecond
}

// Address returns host:port for the WebSocket listener
func (l ListenConfig) Address() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

// Address returns host:port for the admin listener
func (a AdminConfig) Address() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.terrain.max_mountains", economy.DefaultMaxMountains)
	v.SetDefault("game.terrain.max_water", economy.DefaultMaxWater)

	// Server defaults
	v.SetDefault("server.listen.host", "0.0.0.0")
	v.SetDefault("server.listen.port", 5000)
	v.SetDefault("server.protocol_id", 7)
	v.SetDefault("server.tick_interval_ms", 10)
	v.SetDefault("server.inbound_queue_size", 256)
	v.SetDefault("server.client_send_buffer", 64)
	v.SetDefault("server.rate_limit.per_second", 20)
	v.SetDefault("server.rate_limit.burst", 40)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")

	// Admin defaults
	v.SetDefault("admin.host", "127.0.0.1")
	v.SetDefault("admin.port", 50051)
	v.SetDefault("admin.enable_reflection", true)
	v.SetDefault("admin.graceful_shutdown_delay", 2)

	// Development defaults
	v.SetDefault("development.dump_board", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/territory")
	}

	v.SetEnvPrefix("TERRITORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the search
		// paths only ConfigFileNotFoundError is tolerated
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the reloaded config.
func WatchConfig(onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.Terrain.MaxMountains < 0 {
		return fmt.Errorf("game.terrain.max_mountains must be non-negative")
	}
	if c.Game.Terrain.MaxWater < 0 {
		return fmt.Errorf("game.terrain.max_water must be non-negative")
	}

	if c.Server.Listen.Port <= 0 || c.Server.Listen.Port > 65535 {
		return fmt.Errorf("server.listen.port must be between 1 and 65535")
	}
	if c.Server.ProtocolID <= 0 {
		return fmt.Errorf("server.protocol_id must be positive")
	}
	if c.Server.TickIntervalMS <= 0 {
		return fmt.Errorf("server.tick_interval_ms must be positive")
	}
	if c.Server.InboundQueueSize <= 0 {
		return fmt.Errorf("server.inbound_queue_size must be positive")
	}
	if c.Server.ClientSendBuffer <= 0 {
		return fmt.Errorf("server.client_send_buffer must be positive")
	}
	if c.Server.RateLimit.PerSecond <= 0 {
		return fmt.Errorf("server.rate_limit.per_second must be positive")
	}
	if c.Server.RateLimit.Burst < 1 {
		return fmt.Errorf("server.rate_limit.burst must be at least 1")
	}
	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("server.log_format must be console or json")
	}

	if c.Admin.Port <= 0 || c.Admin.Port > 65535 {
		return fmt.Errorf("admin.port must be between 1 and 65535")
	}
	if c.Admin.GracefulShutdownDelay < 0 {
		return fmt.Errorf("admin.graceful_shutdown_delay must be non-negative")
	}

	return nil
}
