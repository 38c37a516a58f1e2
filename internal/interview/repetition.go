package interview

import "strings"

// Normalize lowercases and trims an answer for repetition checks
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// IsRepeat reports whether current exactly matches one of past. Both sides
// must already be normalized.
func IsRepeat(current string, past []string) bool {
	for _, p := range past {
		if p == current {
			return true
		}
	}
	return false
}
