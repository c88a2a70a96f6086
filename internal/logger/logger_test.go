package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		level    string
		env      string
		expected zapcore.Level
	}{
		{"DebugLevel", "debug", "development", zapcore.DebugLevel},
		{"InfoLevel", "info", "production", zapcore.InfoLevel},
		{"WarnLevel", "warn", "production", zapcore.WarnLevel},
		{"WarningAlias", "WARNING", "", zapcore.WarnLevel},
		{"ErrorLevel", "error", "production", zapcore.ErrorLevel},
		{"DefaultToInfo", "unknown", "production", zapcore.InfoLevel},
		{"EmptyToInfo", "", "", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(tc.level, tc.env)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.True(t, logger.Core().Enabled(tc.expected))
			if tc.expected > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tc.expected-1))
			}
		})
	}
}
