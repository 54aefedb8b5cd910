package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/embyupdate/config"
)

func TestSetupLogger(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)
	defer out.Close()

	tests := []struct {
		level    string
		format   string
		expected zerolog.Level
	}{
		{"debug", "json", zerolog.DebugLevel},
		{"info", "console", zerolog.InfoLevel},
		{"warn", "console", zerolog.WarnLevel},
		{"error", "json", zerolog.ErrorLevel},
		{"", "console", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			l := setupLogger(config.LoggingConfig{Level: tt.level, Format: tt.format}, out)
			assert.Equal(t, tt.expected, l.GetLevel())
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	_, err = parseVersion("dev")
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"update", "watch", "exec", "version", "self-update"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestInitializeAppLogLevelOverride(t *testing.T) {
	t.Cleanup(func() { cfg, logLevel = nil, "" })

	newCmd := func(level string) *cobra.Command {
		c := &cobra.Command{Use: "test"}
		c.Flags().StringVar(&logLevel, "log-level", "", "")
		require.NoError(t, c.Flags().Set("log-level", level))
		return c
	}

	err := initializeApp(newCmd("trace"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --log-level")

	require.NoError(t, initializeApp(newCmd("debug"), nil))
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
