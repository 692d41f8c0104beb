// Package utils provides shared utility functions for Kestrel.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: replaces a file via a temporary file and rename
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//   - GenerateIdentityName: default contact name for a new key
//
// # String Utilities
//
//   - SanitizeContactName / IsValidContactName: contact name rules
//   - FormatNames: formats contact names for human-readable output
//
// # Password Input
//
//   - ReadPassword / ReadNewPassword: no-echo terminal prompts
//   - ReadPasswordLines: passwords piped on stdin, one per line
package utils
