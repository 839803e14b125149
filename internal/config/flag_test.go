package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-b", "postgres", "-d", "postgres://db", "-k", "secret", "-t", "15", "-m", "argon2id", "-l", "debug", "-f", "zap"},
			expected: &Config{Backend: "postgres", DatabaseDSN: "postgres://db", SessionSecret: "secret",
				SessionTTL: 15 * time.Minute, HashScheme: "argon2id", LogLevel: "debug", LogFormat: "zap"},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "cfg.json", "-x", "-p", "/tmp/m.db", "-r", "redis:6379"},
			expected: &Config{SQLitePath: "/tmp/m.db", RedisAddr: "redis:6379"},
		},
		{
			name:        "ttl not a number",
			args:        []string{"-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseFlags_KeepsTTLWithoutFlag(t *testing.T) {
	cfg := &Config{SessionTTL: 90 * time.Second}
	parseFlags(cfg, nil)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
}
