package ux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptCredentials_Complete(t *testing.T) {
	in := Credentials{Email: "a@x.io", Password: "pw"}
	out, err := PromptCredentials(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPromptCredentials_NoTerminal(t *testing.T) {
	t.Setenv("CI", "1")
	_, err := PromptCredentials(Credentials{Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrNotInteractive)

	ok, err := Confirm("continue?", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("coach@school.edu"))
	assert.Error(t, validateEmail(""))
	assert.Error(t, validateEmail("not-an-email"))
}
