// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

func stubPromptRunner(t *testing.T, answer string) {
	t.Helper()
	orig := promptUIRunner
	promptUIRunner = func(promptui.Prompt) (string, error) {
		return answer, nil
	}
	t.Cleanup(func() { promptUIRunner = orig })
}

func stubSelectRunner(t *testing.T, answer string) {
	t.Helper()
	orig := promptUISelectRunner
	promptUISelectRunner = func(promptui.Select) (int, string, error) {
		return 0, answer, nil
	}
	t.Cleanup(func() { promptUISelectRunner = orig })
}

func TestCaptureString(t *testing.T) {
	stubPromptRunner(t, "server")
	p := NewPrompter()

	got, err := p.CaptureString("Profile name")
	require.NoError(t, err)
	require.Equal(t, "server", got)
}

func TestCaptureYesNo(t *testing.T) {
	require := require.New(t)
	p := NewPrompter()

	stubSelectRunner(t, Yes)
	got, err := p.CaptureYesNo("Continue")
	require.NoError(err)
	require.True(got)

	stubSelectRunner(t, No)
	got, err = p.CaptureNoYes("Overwrite")
	require.NoError(err)
	require.False(got)
}

func TestCaptureList(t *testing.T) {
	stubSelectRunner(t, "ssh")
	p := NewPrompter()

	got, err := p.CaptureList("Mode", []string{"stdio", "ssh"})
	require.NoError(t, err)
	require.Equal(t, "ssh", got)
}

func TestCapturePositiveInt(t *testing.T) {
	stubPromptRunner(t, "8022")
	p := NewPrompter()

	got, err := p.CapturePositiveInt("Port")
	require.NoError(t, err)
	require.Equal(t, 8022, got)
}

func TestValidators(t *testing.T) {
	require := require.New(t)

	require.Error(validateNonEmpty("  "))
	require.NoError(validateNonEmpty("x"))

	require.Error(validatePositiveInt("abc"))
	require.Error(validatePositiveInt("0"))
	require.Error(validatePositiveInt("-1"))
	require.NoError(validatePositiveInt("22"))
}
