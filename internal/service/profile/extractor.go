// Package profile extracts simple user facts from submitted text.
package profile

import "regexp"

// namePattern matches self-introductions of the form "my name is X",
// "I'm X" or "I am X". The capture is validated separately so that only
// conventionally capitalized tokens count as names.
var namePattern = regexp.MustCompile(`(?i)\b(?:my name is|i'm|i am)\s+([A-Za-z]+)`)

// ExtractName returns the name from the first self-introduction in text,
// if any. The token must pass the classic ASCII capitalization test:
// first letter uppercase, remaining letters lowercase.
func ExtractName(text string) (string, bool) {
	m := namePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if !isCapitalized(m[1]) {
		return "", false
	}
	return m[1], true
}

func isCapitalized(token string) bool {
	if token == "" || token[0] < 'A' || token[0] > 'Z' {
		return false
	}
	for i := 1; i < len(token); i++ {
		if token[i] < 'a' || token[i] > 'z' {
			return false
		}
	}
	return true
}
