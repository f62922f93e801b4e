// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jordanamos/sas-cli/pkg/utils"
	"github.com/manifoldco/promptui"
)

const (
	Yes = "Yes"
	No  = "No"
)

// promptUIRunner is a variable for testing purposes to allow mocking prompt.Run()
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// promptUISelectRunner is a variable for testing purposes to allow mocking select.Run()
var promptUISelectRunner = func(sel promptui.Select) (int, string, error) {
	return sel.Run()
}

type Prompter interface {
	CaptureString(promptStr string) (string, error)
	CaptureStringAllowEmpty(promptStr string) (string, error)
	CapturePassword(promptStr string) (string, error)
	CaptureYesNo(promptStr string) (bool, error)
	CaptureNoYes(promptStr string) (bool, error)
	CaptureList(promptStr string, options []string) (string, error)
	CaptureExistingFilepath(promptStr string) (string, error)
	CapturePositiveInt(promptStr string) (int, error)
}

type realPrompter struct{}

// NewPrompter returns an interactive Prompter backed by promptui
func NewPrompter() Prompter {
	return &realPrompter{}
}

// NewPrompterForMode returns the fail-fast prompter when non-interactive
// mode is requested via flag, env, CI, or a piped stdin
func NewPrompterForMode(nonInteractiveFlag bool) Prompter {
	if nonInteractiveFlag || !IsInteractive() {
		return NewNonInteractivePrompter()
	}
	return NewPrompter()
}

func validateNonEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("string cannot be empty")
	}
	return nil
}

func validateExistingFilepath(input string) error {
	if !utils.FileExists(utils.ExpandHome(input)) {
		return fmt.Errorf("file doesn't exist")
	}
	return nil
}

func validatePositiveInt(input string) error {
	val, err := strconv.Atoi(input)
	if err != nil {
		return err
	}
	if val <= 0 {
		return fmt.Errorf("value must be greater than zero")
	}
	return nil
}

func (*realPrompter) CaptureString(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validateNonEmpty,
	}
	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureStringAllowEmpty(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label: promptStr,
	}
	return promptUIRunner(prompt)
}

func (*realPrompter) CapturePassword(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Mask:     '*',
		Validate: validateNonEmpty,
	}
	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureYesNo(promptStr string) (bool, error) {
	return captureYesNoBase(promptStr, []string{Yes, No})
}

func (*realPrompter) CaptureNoYes(promptStr string) (bool, error) {
	return captureYesNoBase(promptStr, []string{No, Yes})
}

func captureYesNoBase(promptStr string, orderedOptions []string) (bool, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: orderedOptions,
	}
	_, decision, err := promptUISelectRunner(prompt)
	if err != nil {
		return false, err
	}
	return decision == Yes, nil
}

func (*realPrompter) CaptureList(promptStr string, options []string) (string, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: options,
	}
	_, listDecision, err := promptUISelectRunner(prompt)
	return listDecision, err
}

func (*realPrompter) CaptureExistingFilepath(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validateExistingFilepath,
	}
	pathStr, err := promptUIRunner(prompt)
	if err != nil {
		return "", err
	}
	return utils.ExpandHome(pathStr), nil
}

func (*realPrompter) CapturePositiveInt(promptStr string) (int, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validatePositiveInt,
	}
	intStr, err := promptUIRunner(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(intStr)
}
