package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", DefaultMaxInputSize - 1, false},
		{"Exact Limit", DefaultMaxInputSize, false},
		{"Over Limit", DefaultMaxInputSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_EnvLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")
	_, err := SanitizeInput("load abcdef")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	t.Setenv(EnvMaxInputSize, "garbage")
	_, err = SanitizeInput("load abcdef")
	assert.NoError(t, err, "invalid override falls back to the default")
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "load ab.nfa", "load ab.nfa"},
		{"Safe Controls", "show\tdot\r\n", "show\tdot\r\n"},
		{"ANSI Code", "\x1b[31mshow\x1b[0m", "[31mshow[0m"},
		{"Null Byte", "sta\x00tus", "status"},
		{"Bell", "reset\x07", "reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("load \xff\xfe")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestRunSession_SanitizedLines(t *testing.T) {
	var out bytes.Buffer
	err := RunSession(context.Background(), SessionOptions{
		Options: Options{In: strings.NewReader("sta\x00tus\nload \xff\n"), Out: &out},
		Quiet:   true,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "phase:   awaiting_input")
	assert.Contains(t, out.String(), "error: input contains invalid UTF-8")
}
