package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Levels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, setupLogger(&buf, tt.verbosity, "", true))
		assert.Equal(t, tt.want, zerolog.GlobalLevel())
	}
}

func TestSetupLogger_WritesFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	path := filepath.Join(t.TempDir(), "logs", "antglob.log")

	var buf bytes.Buffer
	require.NoError(t, setupLogger(&buf, 0, path, true))
	Warning("listing %s failed", "/tmp/x")
	Debug("hidden")
	require.NoError(t, CloseLogger())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "listing /tmp/x failed")
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, buf.String(), "listing /tmp/x failed")
}

func TestGetLogger_Component(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, setupLogger(&buf, 1, "", true))
	l := GetLogger("walker")
	l.Info().Msg("started")
	assert.Contains(t, buf.String(), "component=walker")
	assert.Contains(t, buf.String(), "started")
}
