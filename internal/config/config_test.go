package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  terrain:
    max_mountains: 3
server:
  listen:
    port: 8080
  rate_limit:
    burst: 10
admin:
  enable_reflection: false
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Reset global state
	cfg = nil
	v = nil

	err = Init(configFile)
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 3, c.Game.Terrain.MaxMountains)
	assert.Equal(t, 4, c.Game.Terrain.MaxWater)
	assert.Equal(t, 8080, c.Server.Listen.Port)
	assert.Equal(t, 10, c.Server.RateLimit.Burst)
	assert.False(t, c.Admin.EnableReflection)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 5, c.Game.Terrain.MaxMountains)
	assert.Equal(t, 4, c.Game.Terrain.MaxWater)
	assert.Equal(t, "0.0.0.0:5000", c.Server.Listen.Address())
	assert.Equal(t, 7, c.Server.ProtocolID)
	assert.Equal(t, 10*time.Millisecond, c.Server.TickInterval())
	assert.Equal(t, 256, c.Server.InboundQueueSize)
	assert.Equal(t, 64, c.Server.ClientSendBuffer)
	assert.Equal(t, 20.0, c.Server.RateLimit.PerSecond)
	assert.Equal(t, 40, c.Server.RateLimit.Burst)
	assert.Equal(t, "info", c.Server.LogLevel)
	assert.Equal(t, "console", c.Server.LogFormat)
	assert.Equal(t, "127.0.0.1:50051", c.Admin.Address())
	assert.True(t, c.Admin.EnableReflection)
	assert.Equal(t, 2, c.Admin.GracefulShutdownDelay)
	assert.False(t, c.Development.DumpBoard)
}

func TestEnvironmentVariables(t *testing.T) {
	cfg = nil
	v = nil

	t.Setenv("TERRITORY_GAME_TERRAIN_MAX_WATER", "2")
	t.Setenv("TERRITORY_ADMIN_PORT", "9090")

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 2, c.Game.Terrain.MaxWater)
	assert.Equal(t, 9090, c.Admin.Port)
}

func TestSet(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	Set("server.log_level", "debug")
	Set("development.dump_board", true)

	c := Get()
	assert.Equal(t, "debug", c.Server.LogLevel)
	assert.True(t, c.Development.DumpBoard)
	assert.Equal(t, "debug", GetViper().GetString("server.log_level"))
}

func TestInitRejectsInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  log_format: xml\n"), 0644))

	cfg = nil
	v = nil

	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.log_format")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Game: GameConfig{Terrain: TerrainConfig{MaxMountains: 5, MaxWater: 4}},
			Server: ServerConfig{
				Listen:           ListenConfig{Host: "0.0.0.0", Port: 5000},
				ProtocolID:       7,
				TickIntervalMS:   10,
				InboundQueueSize: 256,
				ClientSendBuffer: 64,
				RateLimit:        RateLimitConfig{PerSecond: 20, Burst: 40},
				LogLevel:         "info",
				LogFormat:        "console",
			},
			Admin: AdminConfig{Host: "127.0.0.1", Port: 50051},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"negative mountains", func(c *Config) { c.Game.Terrain.MaxMountains = -1 }, "game.terrain.max_mountains"},
		{"negative water", func(c *Config) { c.Game.Terrain.MaxWater = -1 }, "game.terrain.max_water"},
		{"no terrain", func(c *Config) { c.Game.Terrain = TerrainConfig{} }, ""},
		{"port zero", func(c *Config) { c.Server.Listen.Port = 0 }, "server.listen.port"},
		{"port too high", func(c *Config) { c.Server.Listen.Port = 70000 }, "server.listen.port"},
		{"protocol id", func(c *Config) { c.Server.ProtocolID = 0 }, "server.protocol_id"},
		{"tick interval", func(c *Config) { c.Server.TickIntervalMS = 0 }, "server.tick_interval_ms"},
		{"queue size", func(c *Config) { c.Server.InboundQueueSize = 0 }, "server.inbound_queue_size"},
		{"send buffer", func(c *Config) { c.Server.ClientSendBuffer = 0 }, "server.client_send_buffer"},
		{"rate", func(c *Config) { c.Server.RateLimit.PerSecond = 0 }, "server.rate_limit.per_second"},
		{"burst", func(c *Config) { c.Server.RateLimit.Burst = 0 }, "server.rate_limit.burst"},
		{"log format", func(c *Config) { c.Server.LogFormat = "text" }, "server.log_format"},
		{"admin port", func(c *Config) { c.Admin.Port = -5 }, "admin.port"},
		{"shutdown delay", func(c *Config) { c.Admin.GracefulShutdownDelay = -1 }, "admin.graceful_shutdown_delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := Validate(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
