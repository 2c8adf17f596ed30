package utils

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{"session", "settings.json", "my-ext_2", "a"}
	for _, name := range valid {
		if err := ValidateName("key", name); err != nil {
			t.Errorf("%q rejected: %v", name, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b", `a\b`, "a b", "ключ", strings.Repeat("x", MaxNameLength+1)}
	for _, name := range invalid {
		if err := ValidateName("key", name); err == nil {
			t.Errorf("%q accepted", name)
		}
	}
}

func TestValidateNameErrorNamesKind(t *testing.T) {
	err := ValidateName("extension id", "../etc")
	if err == nil || !strings.Contains(err.Error(), "extension id") {
		t.Errorf("Error does not identify the kind: %v", err)
	}
}
