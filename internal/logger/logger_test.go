package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New("warn")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud")
	assert.Error(t, err)
}
