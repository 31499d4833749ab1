package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestGlobalsUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Sugar.Infof("hello %s", "world")
		Log.Info("plain")
	})
}

func TestInitReplacesGlobals(t *testing.T) {
	before := Log
	Init("debug")
	assert.NotSame(t, before, Log)
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))
}
