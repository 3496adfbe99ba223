package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// Prompter asks the operator for login credentials.
type Prompter interface {
	Credentials(email string) (string, string, error)
}

type huhPrompter struct{}

// Credentials shows an email and password form, the email prefilled.
func (huhPrompter) Credentials(email string) (string, string, error) {
	var password string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("E-mail").
			Placeholder("voce@empresa.com").
			Value(&email),
		huh.NewInput().
			Title("Senha").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))

	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return email, password, nil
}

// isInteractive returns true if stdin is a terminal (not piped)
func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
