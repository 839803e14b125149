package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-b", "sqlite"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-config=alt.json", "-b", "memory"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "several allowed flags keep their order",
			args:    []string{"-b", "redis", "-c", "conf.json", "--other", "x"},
			allowed: []string{"-c", "-b"},
			want:    []string{"-b", "redis", "-c", "conf.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}))
	})

	t.Run("last flag wins", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/env/conf.json")
		assert.Equal(t, "/env/conf.json", ConfigPath([]string{"-b", "memory"}))
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/env/conf.json")
		assert.Equal(t, "/flag.json", ConfigPath([]string{"-config=/flag.json"}))
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Empty(t, ConfigPath(nil))
	})
}
