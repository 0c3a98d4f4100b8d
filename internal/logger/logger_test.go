package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		environment string
		debug       bool
	}{
		{"production", false},
		{"development", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			log, err := New(tt.environment)
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Equal(t, tt.debug, log.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		})
	}
}
