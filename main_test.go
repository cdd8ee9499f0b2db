package main

import (
	"errors"
	"testing"
	"time"

	"github.com/example/mini-calculator/modules/repl"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CALC_TEST_VALUE", "")
	assert.Equal(t, "fallback", getEnv("CALC_TEST_VALUE", "fallback"))

	t.Setenv("CALC_TEST_VALUE", "set")
	assert.Equal(t, "set", getEnv("CALC_TEST_VALUE", "fallback"))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CALC_TEST_TIMEOUT", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("CALC_TEST_TIMEOUT", time.Second))

	t.Setenv("CALC_TEST_TIMEOUT", "soon")
	assert.Equal(t, time.Second, getEnvDuration("CALC_TEST_TIMEOUT", time.Second))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		reason repl.StopReason
		err    error
		want   int
	}{
		{name: "end of stream", reason: repl.StopEndOfStream, want: 0},
		{name: "exit command", reason: repl.StopExitCommand, want: 0},
		{name: "cancelled", reason: repl.StopCancelled, want: 0},
		{name: "read failure", reason: 0, err: errors.New("failed to read input"), want: 1},
		{name: "unknown reason", reason: repl.StopReason(0), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.reason, tt.err))
		})
	}
}
