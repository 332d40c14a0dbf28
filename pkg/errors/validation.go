package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name before it is used in a
// statistics service URL or a cache file name.
//
// The rules are conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences or separators
//   - Maximum length of 256 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	if !packageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid package name: %q", name)
	}

	return nil
}

// packageNameRegex matches names accepted by both PyPI (PEP 508) and conda.
var packageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidateChannel validates an anaconda.org channel name.
func ValidateChannel(channel string) error {
	if channel == "" {
		return New(ErrCodeInvalidInput, "channel cannot be empty")
	}
	if !packageNameRegex.MatchString(channel) {
		return New(ErrCodeInvalidInput, "invalid channel name: %q", channel)
	}
	return nil
}
