package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://10.0.0.1:9090", "-t", "5", "-d", "100", "-o", "/tmp/out", "-l", "debug"},
			expected: &Config{
				ServerURL:      "http://10.0.0.1:9090",
				RequestTimeout: 5 * time.Second,
				SearchDebounce: 100 * time.Millisecond,
				DownloadDir:    "/tmp/out",
				LogLevel:       "debug",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-c", "cfg.json", "-a=http://h:1", "-x", "1"},
			expected: &Config{
				ServerURL: "http://h:1",
			},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			err := parseFlags(config)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
