package utils

import (
	"os/user"
	"strconv"
	"strings"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GenerateIdentityName picks a contact name for a new key when the user did
// not supply one. It starts from the system username and appends a number
// suffix (-2, -3, etc.) until the name does not clash with existingNames.
func GenerateIdentityName(existingNames []string) string {
	baseName := "me"
	if username, err := GetUsername(); err == nil {
		if sanitized := SanitizeContactName(username); sanitized != "" {
			baseName = sanitized
		}
	}

	return nextFreeName(baseName, existingNames)
}

// nextFreeName returns baseName, or baseName with the first free number
// suffix, matching names the way the keyring does (strings.EqualFold).
func nextFreeName(baseName string, existingNames []string) string {
	taken := func(name string) bool {
		for _, existing := range existingNames {
			if strings.EqualFold(existing, name) {
				return true
			}
		}
		return false
	}

	name := baseName
	for suffix := 2; taken(name); suffix++ {
		name = baseName + "-" + strconv.Itoa(suffix)
	}
	return name
}
