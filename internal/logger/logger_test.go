package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitSetsConfiguredLevel(t *testing.T) {
	Init("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestInitFallsBackToInfo(t *testing.T) {
	Init("chatty")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Init("")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
