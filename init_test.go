package plotkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogConfigFromEnv(t *testing.T) {
	t.Setenv(envLogLevel, "warn")
	t.Setenv(envLogJSON, "1")

	config, err := logConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "warn", config.Level)
	require.True(t, config.JSON)
	require.True(t, config.Colored)
	require.Equal(t, defaultLogTimeFormat, config.TimeFormat)

	t.Setenv(envLogColor, "maybe")
	_, err = logConfigFromEnv()
	require.Error(t, err)
}

func TestDefaultLog(t *testing.T) {
	require.NotNil(t, DefaultLog)
}
