package cuboid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		info  bool
	}{
		{"", false, true},
		{"debug", true, true},
		{"INFO", false, true},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := NewLogger(tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.info, logger.Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	logger, err := NewLogger("loud")
	assert.Nil(t, logger)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
