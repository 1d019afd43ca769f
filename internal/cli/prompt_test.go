package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedSession(input string) (*Session, *strings.Builder) {
	out := &strings.Builder{}
	return New(nil, strings.NewReader(input), out, true), out
}

func TestPromptTrimsInput(t *testing.T) {
	s, _ := scriptedSession("  hello  \n")
	got, err := s.prompt("Name")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestPromptIntRetriesUntilValid(t *testing.T) {
	s, out := scriptedSession("abc\n42\n")
	got, err := s.promptInt("Age")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Contains(t, out.String(), "whole number")
}

func TestPromptOptionalSkipsOnEmpty(t *testing.T) {
	s, _ := scriptedSession("\n\n")
	n, err := s.promptOptionalInt("Calories")
	require.NoError(t, err)
	assert.Zero(t, n)

	f, err := s.promptOptionalFloat("Speed")
	require.NoError(t, err)
	assert.Zero(t, f)
}

func TestPromptPropagatesEOF(t *testing.T) {
	s, _ := scriptedSession("")
	_, err := s.prompt("Name")
	assert.Error(t, err)
}
