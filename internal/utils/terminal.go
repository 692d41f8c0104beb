package utils

import (
	"bytes"
	"fmt"
	"os"

	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"

	"golang.org/x/term"
)

// ReadPassword prompts for a password on stderr and reads it from the
// terminal without echo. Returns an error if stdin is not a terminal.
func ReadPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read password: stdin is not a terminal (hint: use --password-stdin)")
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	return password, nil
}

// ReadNewPassword prompts for a password twice and checks both entries match.
func ReadNewPassword(prompt, confirmPrompt string) ([]byte, error) {
	return readNewPassword(ReadPassword, prompt, confirmPrompt)
}

func readNewPassword(read func(string) ([]byte, error), prompt, confirmPrompt string) ([]byte, error) {
	password, err := read(prompt)
	if err != nil {
		return nil, err
	}

	confirm, err := read(confirmPrompt)
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(confirm)

	if !bytes.Equal(password, confirm) {
		clear(password)
		return nil, kerrors.ErrPasswordMismatch
	}

	return password, nil
}
