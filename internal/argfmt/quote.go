package argfmt

import (
	"fmt"
	"strings"
)

// safeRunes are the characters that never need shell quoting.
const safeRunes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./_-"

// Quote renders s as a single POSIX shell token. Strings made only of safe
// characters pass through untouched; everything else is wrapped in single
// quotes, with embedded single quotes spliced out as '"'"'. A NUL byte
// cannot survive argv at all and is rejected.
func Quote(s string) (string, error) {
	if strings.ContainsRune(s, 0) {
		return "", fmt.Errorf("value contains a NUL byte")
	}
	if s == "" {
		return "''", nil
	}
	if isSafe(s) {
		return s, nil
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'", nil
}

func isSafe(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(safeRunes, r) {
			return false
		}
	}
	return true
}
