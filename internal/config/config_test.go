package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("addr", ":8080", "")
	fs.String("log-level", "info", "")
	fs.String("events-backend", BackendMemory, "")
	fs.String("redis-addr", "", "")
	fs.Int("mcp-port", 8081, "")
	fs.String("unrelated", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Assertions)
	assert.Equal(t, 4096, cfg.MaxContentSize)
	assert.Equal(t, BackendMemory, cfg.Events.Backend)
	assert.Equal(t, "tessera:", cfg.Events.ChannelPrefix)
	assert.Equal(t, TransportStdio, cfg.MCP.Transport)
	assert.Equal(t, 8081, cfg.MCP.Port)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
addr: ":9000"
log_level: debug
assertions: true
events:
  backend: redis
  redis_addr: "file:6379"
`), 0o644))

	t.Setenv("TESSERA_LOG_LEVEL", "warn")
	t.Setenv("TESSERA_EVENTS__REDIS_ADDR", "env:6379")
	t.Setenv("TESSERA_MAX_CONTENT_SIZE", "512")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--redis-addr", "flag:6379", "--unrelated", "x"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr, "file beats default; unchanged flag must not override")
	assert.Equal(t, "warn", cfg.LogLevel, "env beats file")
	assert.True(t, cfg.Assertions)
	assert.Equal(t, BackendRedis, cfg.Events.Backend)
	assert.Equal(t, "flag:6379", cfg.Events.RedisAddr, "flag beats env")
	assert.Equal(t, 512, cfg.MaxContentSize, "env strings are decoded into ints")
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("nope.yaml", nil)
	assert.Error(t, err)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--events-backend", "kafka"}))

	_, err := Load("", flags)
	assert.ErrorContains(t, err, "events.backend")
}

func TestValidate(t *testing.T) {
	cfg := Config{MaxContentSize: 4096, Events: EventsConfig{Backend: BackendMemory}, MCP: MCPConfig{Transport: "grpc", Port: 1}}
	assert.ErrorContains(t, cfg.Validate(), "mcp.transport")

	cfg.MCP.Transport = TransportSSE
	cfg.MCP.Port = 0
	assert.ErrorContains(t, cfg.Validate(), "mcp.port")

	cfg.MCP.Port = 1
	cfg.MaxContentSize = 0
	assert.ErrorContains(t, cfg.Validate(), "max_content_size")
}
