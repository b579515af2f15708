package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C or Esc.
var ErrCancelled = errors.New("cancelled by user")

// Confirm asks a yes/no question. Anything but an explicit yes is a no.
func Confirm(question string) bool {
	p := promptui.Prompt{
		Label:     StyleWarning.Render(question),
		IsConfirm: true,
	}
	_, err := p.Run()
	return err == nil
}

// ConfirmDanger is like Confirm but styled for destructive actions.
func ConfirmDanger(question string) bool {
	p := promptui.Prompt{
		Label:     StyleError.Render("⚠ " + question),
		IsConfirm: true,
	}
	_, err := p.Run()
	return err == nil
}

// Interactive reports whether stdin is a terminal we can prompt on.
func Interactive() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

// cancelled maps promptui's interrupt errors to ErrCancelled.
func cancelled(err error, what string) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return fmt.Errorf("%s: %w", strings.ToLower(what), ErrCancelled)
	}
	return fmt.Errorf("reading %s: %w", strings.ToLower(what), err)
}
