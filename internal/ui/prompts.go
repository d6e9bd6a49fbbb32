package ui

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// defaultStdio returns the default terminal stdio (os.Stdin, os.Stdout, os.Stderr)
func defaultStdio() terminal.Stdio {
	return terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// PromptDefault prompts with a default value. The optional validator runs on
// the entered text.
func PromptDefault(label, defaultValue string, validator ...func(string) error) (string, error) {
	return PromptDefaultWithStdio(label, defaultValue, defaultStdio(), validator...)
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(label string, defaultYes bool) (bool, error) {
	return PromptConfirmWithStdio(label, defaultYes, defaultStdio())
}

// PromptSelect prompts for selection from a list
func PromptSelect(label string, options []string) (string, error) {
	return PromptSelectWithStdio(label, options, defaultStdio())
}

// =============================================================================
// WithStdio variants for testing with virtual terminals
// =============================================================================

// PromptDefaultWithStdio is like PromptDefault but with custom stdio for testing
func PromptDefaultWithStdio(label, defaultValue string, stdio terminal.Stdio, validator ...func(string) error) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: label,
		Default: defaultValue,
	}

	opts := []survey.AskOpt{survey.WithStdio(stdio.In, stdio.Out, stdio.Err)}
	if len(validator) > 0 && validator[0] != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			if str, ok := ans.(string); ok {
				return validator[0](str)
			}
			return nil
		}))
	}

	err := survey.AskOne(prompt, &value, opts...)
	if err != nil {
		return defaultValue, err
	}

	if value == "" {
		return defaultValue, nil
	}

	return value, nil
}

// PromptConfirmWithStdio is like PromptConfirm but with custom stdio for testing
func PromptConfirmWithStdio(label string, defaultYes bool, stdio terminal.Stdio) (bool, error) {
	var value bool
	prompt := &survey.Confirm{
		Message: label,
		Default: defaultYes,
	}

	err := survey.AskOne(prompt, &value, survey.WithStdio(stdio.In, stdio.Out, stdio.Err))
	return value, err
}

// PromptSelectWithStdio is like PromptSelect but with custom stdio for testing
func PromptSelectWithStdio(label string, options []string, stdio terminal.Stdio) (string, error) {
	var value string
	prompt := &survey.Select{
		Message: label,
		Options: options,
	}

	err := survey.AskOne(prompt, &value, survey.WithStdio(stdio.In, stdio.Out, stdio.Err))
	return value, err
}
