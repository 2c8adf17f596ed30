// Package utils provides shared validation helpers.
package utils

import (
	"fmt"
	"regexp"
)

// MaxNameLength bounds storage keys and extension IDs
const MaxNameLength = 128

// safeNamePattern allows alphanumeric, dots, hyphens and underscores.
// Path separators can never appear, so a validated name stays a single
// path element under its root directory.
var safeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateName checks a renderer-supplied name used as a filesystem
// entry (storage key, extension ID). Names that are empty, too long,
// dot-only or outside the safe character set are rejected.
func ValidateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%s too long: %d characters (max %d)", kind, len(name), MaxNameLength)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid %s: %q", kind, name)
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid %s: %q", kind, name)
	}
	return nil
}
