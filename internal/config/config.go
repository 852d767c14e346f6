// Package config loads Tessera configuration from defaults, an optional
// tessera.yaml, TESSERA_ environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// FileName is the config file looked up in the working directory.
const FileName = "tessera.yaml"

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: TESSERA_EVENTS__REDIS_ADDR -> events.redis_addr.
const EnvPrefix = "TESSERA_"

// Event bus backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config is the resolved configuration.
type Config struct {
	Addr       string `koanf:"addr"`
	LogLevel   string `koanf:"log_level"`
	Assertions bool   `koanf:"assertions"`
	// MaxContentSize caps leaf text in bytes.
	MaxContentSize int `koanf:"max_content_size"`

	Events EventsConfig `koanf:"events"`
	MCP    MCPConfig    `koanf:"mcp"`
}

// EventsConfig selects how layout events reach UI subscribers.
type EventsConfig struct {
	Backend       string `koanf:"backend"`
	RedisAddr     string `koanf:"redis_addr"`
	ChannelPrefix string `koanf:"channel_prefix"`
}

// MCPConfig configures the MCP adapter.
type MCPConfig struct {
	Transport string `koanf:"transport"`
	Port      int    `koanf:"port"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"addr":           "addr",
	"log-level":      "log_level",
	"assertions":     "assertions",
	"events-backend": "events.backend",
	"redis-addr":     "events.redis_addr",
	"mcp-transport":  "mcp.transport",
	"mcp-port":       "mcp.port",
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"addr":                  ":8080",
		"log_level":             "info",
		"assertions":            false,
		"max_content_size":      4096,
		"events.backend":        BackendMemory,
		"events.redis_addr":     "localhost:6379",
		"events.channel_prefix": "tessera:",
		"mcp.transport":         TransportStdio,
		"mcp.port":              8081,
	}
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (explicit path must exist; the default one is optional)
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (only those explicitly set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, known := flagKeys[f.Name]
			if !f.Changed || !known {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Events.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: events.backend must be %q or %q, got %q", BackendMemory, BackendRedis, c.Events.Backend)
	}
	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("config: mcp.transport must be %q or %q, got %q", TransportStdio, TransportSSE, c.MCP.Transport)
	}
	if c.MaxContentSize <= 0 {
		return fmt.Errorf("config: max_content_size must be positive, got %d", c.MaxContentSize)
	}
	if c.MCP.Port <= 0 {
		return fmt.Errorf("config: mcp.port must be positive, got %d", c.MCP.Port)
	}
	return nil
}
