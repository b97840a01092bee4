package prompt

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError(nil))

	assert.ErrorIs(t, wrapError(promptui.ErrInterrupt), ErrAborted)
	assert.ErrorIs(t, wrapError(promptui.ErrAbort), ErrAborted)

	// Real errors pass through unchanged.
	plain := errors.New("terminal not available")
	assert.Equal(t, plain, wrapError(plain))
}

func TestIsAborted(t *testing.T) {
	assert.True(t, IsAborted(ErrAborted))
	assert.True(t, IsAborted(promptui.ErrInterrupt))
	assert.True(t, IsAborted(promptui.ErrAbort))

	assert.False(t, IsAborted(nil))
	assert.False(t, IsAborted(errors.New("terminal not available")))
}
