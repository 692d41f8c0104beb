package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
	"github.com/kestrel-crypto/kestrel/internal/ui"
	"github.com/kestrel-crypto/kestrel/internal/utils"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// commandContext returns the command's context, or a background context
// when the command was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	return startSpinnerWithFlags(message, verbose, debug)
}

// startSpinnerWithFlags creates and starts a spinner with explicit verbose and debug flags.
// This is useful for commands that have their own flag variables (e.g., config commands).
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debugFlag {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if !verbose && !debugFlag {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debugFlag {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// readPassword reads one password, from stdin with --password-stdin or
// from the terminal otherwise.
func readPassword(prompt string) ([]byte, error) {
	if passwordStdin {
		passwords, err := utils.ReadPasswordLines(passwordInput, 1)
		if err != nil {
			return nil, err
		}
		return passwords[0], nil
	}
	return utils.ReadPassword(prompt)
}

// readNewPassword reads a new password. On the terminal it is entered twice.
func readNewPassword(prompt string) ([]byte, error) {
	if passwordStdin {
		return readPassword(prompt)
	}
	return utils.ReadNewPassword(prompt, "Confirm password: ")
}

// readPasswordPair reads the current and new passwords for a password change.
func readPasswordPair() (oldPassword, newPassword []byte, err error) {
	if passwordStdin {
		passwords, err := utils.ReadPasswordLines(passwordInput, 2)
		if err != nil {
			return nil, nil, err
		}
		return passwords[0], passwords[1], nil
	}

	oldPassword, err = utils.ReadPassword("Current password: ")
	if err != nil {
		return nil, nil, err
	}
	newPassword, err = utils.ReadNewPassword("New password: ", "Confirm new password: ")
	if err != nil {
		clear(oldPassword)
		return nil, nil, err
	}
	return oldPassword, newPassword, nil
}

// formatKeysError formats a keyring error for display to the user.
func formatKeysError(err error) string {
	cross := ui.Error.Sprint(ui.Cross)
	arrow := ui.Info.Sprint(ui.Arrow)

	switch kerrors.Kind(err) {
	case kerrors.KindChaPolyDecrypt:
		return cross + " Wrong password\n" +
			arrow + " The password did not unlock the private key. If you are sure it is right, the stored key may be damaged"
	case kerrors.KindPrivateKeyLength:
		return cross + " The stored private key is corrupted and cannot be read"
	case kerrors.KindPrivateKeyFormat:
		return cross + " The stored private key uses an unsupported format version"
	case kerrors.KindPublicKeyLength:
		return cross + " That is not a valid public key\n" +
			arrow + " Public keys are 48 characters of base64, as printed by " + ui.Code.Sprint("kestrel keys extract")
	case kerrors.KindPublicKeyChecksum:
		return cross + " Public key checksum failed\n" +
			arrow + " The key was probably mistyped or truncated when it was copied"
	}

	switch {
	case errors.Is(err, kerrors.ErrContactNotFound):
		return cross + " " + capitalize(err.Error()) + "\n" +
			arrow + " Run " + ui.Code.Sprint("kestrel keys list") + " to see your contacts"
	case errors.Is(err, kerrors.ErrContactExists),
		errors.Is(err, kerrors.ErrInvalidContactName),
		errors.Is(err, kerrors.ErrNotAnIdentity),
		errors.Is(err, kerrors.ErrIdentityPublicKey),
		errors.Is(err, kerrors.ErrNoChanges),
		errors.Is(err, kerrors.ErrUnsupportedFormat),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidImportFile):
		return cross + " " + capitalize(err.Error())
	case errors.Is(err, kerrors.ErrKeyPairMismatch):
		return cross + " The private key does not match the stored public key\n" +
			arrow + " The keyring entry is inconsistent; restore it from a backup"
	case errors.Is(err, kerrors.ErrNoIdentities):
		return cross + " You have no identities yet\n" +
			arrow + " Run " + ui.Code.Sprint("kestrel keys generate") + " to create one"
	case errors.Is(err, kerrors.ErrIdentityRequired):
		return cross + " You have more than one identity and no default\n" +
			arrow + " Name one, or run " + ui.Code.Sprint("kestrel config set-default-identity <name>")
	case errors.Is(err, kerrors.ErrConfirmationRequired):
		return cross + " " + capitalize(err.Error()) + "\n" +
			arrow + " Deleting it destroys the private key. Re-run with " + ui.Flag.Sprint("--yes") + " to confirm"
	case errors.Is(err, kerrors.ErrEmptyPassword):
		return cross + " Password must not be empty"
	case errors.Is(err, kerrors.ErrPasswordMismatch):
		return cross + " Passwords do not match"
	case errors.Is(err, kerrors.ErrInvalidKeyringFile):
		return cross + " " + capitalize(err.Error()) + "\n" +
			arrow + " Check or restore " + ui.Path.Sprint("keyring.toml") + " in your data directory"
	default:
		return cross + " " + capitalize(err.Error())
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	if kerrors.Kind(err) != "" {
		return false
	}
	switch {
	case errors.Is(err, kerrors.ErrContactNotFound),
		errors.Is(err, kerrors.ErrContactExists),
		errors.Is(err, kerrors.ErrInvalidContactName),
		errors.Is(err, kerrors.ErrNotAnIdentity),
		errors.Is(err, kerrors.ErrIdentityPublicKey),
		errors.Is(err, kerrors.ErrKeyPairMismatch),
		errors.Is(err, kerrors.ErrNoIdentities),
		errors.Is(err, kerrors.ErrIdentityRequired),
		errors.Is(err, kerrors.ErrConfirmationRequired),
		errors.Is(err, kerrors.ErrNoChanges),
		errors.Is(err, kerrors.ErrEmptyPassword),
		errors.Is(err, kerrors.ErrPasswordMismatch),
		errors.Is(err, kerrors.ErrUnsupportedFormat),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidImportFile),
		errors.Is(err, kerrors.ErrInvalidKeyringFile):
		return false
	default:
		return true
	}
}

// ErrSilent makes a command exit non-zero after it has already printed why.
var ErrSilent = errors.New("command failed")

// reportError shows an expected error through the spinner's final message,
// or prints it directly when s is nil, and returns ErrSilent. Unexpected
// errors are returned as they are.
func reportError(s *spinner.Spinner, err error) error {
	Logger.Debugf("Command failed: %v", err)
	if isUnexpectedError(err) {
		return err
	}
	if s == nil {
		fmt.Println(formatKeysError(err))
	} else {
		s.FinalMSG = formatKeysError(err)
	}
	return ErrSilent
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
