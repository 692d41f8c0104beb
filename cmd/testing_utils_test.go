// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments
// and capturing output.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kestrel-crypto/kestrel/internal/configs"

	"github.com/spf13/cobra"
)

// setupTestEnvironment points the user settings at temporary directories and
// resets command state before and after the test.
func setupTestEnvironment(t *testing.T) {
	t.Helper()

	original := *configs.UserKestrelSettings
	tempUserDir := t.TempDir()
	configs.UserKestrelSettings = &configs.UserSettings{
		UserDataPath:    filepath.Join(tempUserDir, "data"),
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		Username:        "testuser",
	}
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	ResetConfigState()

	t.Cleanup(func() {
		configs.UserKestrelSettings = &original
		ResetGlobalState()
		ResetConfigState()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-stdoutChan
	stderr := <-stderrChan

	return stdout + stderr, err
}

// captureStdout is captureOutput without stderr, for commands whose stdout
// is meant to be piped.
func captureStdout(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	devNull, _ := os.Open(os.DevNull)
	os.Stdout = stdoutWriter
	os.Stderr = devNull

	outputChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr
	if devNull != nil {
		devNull.Close()
	}

	return <-outputChan, err
}

// createTestCLI creates a complete CLI instance for testing with the given arguments.
func createTestCLI(args ...string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kestrel",
		Short:         "Kestrel - a password-protected keyring for X25519 keys.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(KeysCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.SetArgs(args)

	return rootCmd
}

// runCLI runs the CLI with args, feeding stdin to --password-stdin.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	ResetConfigState()
	SetPasswordInput(strings.NewReader(stdin))

	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}

// runCLIStdout is runCLI returning only stdout.
func runCLIStdout(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	ResetConfigState()
	SetPasswordInput(strings.NewReader(stdin))

	return captureStdout(func() error {
		return createTestCLI(args...).Execute()
	})
}
