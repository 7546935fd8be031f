package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned by prompts when stdin is not a terminal.
var ErrNotInteractive = errors.New("not an interactive terminal")

// ErrCancelled is returned when the user interrupts a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Prompter asks the user for values the command line left out.
// Tests swap in a scripted implementation.
type Prompter interface {
	Input(message, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
	Select(message string, options []string) (int, error)
}

type surveyPrompter struct {
	interactive func() bool
}

// NewSurveyPrompter returns a Prompter backed by terminal prompts.
// Every prompt fails with ErrNotInteractive when stdin is not a terminal.
func NewSurveyPrompter() Prompter {
	return &surveyPrompter{interactive: stdinIsTerminal}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *surveyPrompter) Input(message, def string) (string, error) {
	if !p.interactive() {
		return "", ErrNotInteractive
	}
	var out string
	prompt := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Confirm(message string, def bool) (bool, error) {
	if !p.interactive() {
		return false, ErrNotInteractive
	}
	var out bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Select(message string, options []string) (int, error) {
	if !p.interactive() {
		return 0, ErrNotInteractive
	}
	if len(options) == 0 {
		return 0, fmt.Errorf("nothing to select")
	}
	var out int
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
