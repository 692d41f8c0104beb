package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

// ReadPasswordLines reads count passwords from r, one per line. Trailing
// carriage returns and newlines are stripped; other whitespace is kept.
func ReadPasswordLines(r io.Reader, count int) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	passwords := make([][]byte, 0, count)

	for len(passwords) < count {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read password from stdin: %w", err)
			}
			return nil, fmt.Errorf("expected %d password line(s) on stdin, got %d", count, len(passwords))
		}

		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			return nil, kerrors.ErrEmptyPassword
		}
		passwords = append(passwords, []byte(line))
	}

	return passwords, nil
}
