package interview

import (
	"strconv"
	"strings"
)

// DefaultScore is used when no score can be parsed from an evaluation
const DefaultScore = 70

// RepeatPenaltyScore is assigned to a verbatim repeated answer
const RepeatPenaltyScore = 30

// ExtractScore finds the first line with a "score:" marker (any case) and
// returns the first run of digits after the colon, stopping at "/". ok is
// false when DefaultScore was substituted.
func ExtractScore(evaluation string) (score int, ok bool) {
	for _, line := range strings.Split(evaluation, "\n") {
		// ToLower can change the byte length of a line, so every offset
		// below is taken from the lowered copy
		line = strings.ToLower(line)
		idx := strings.Index(line, "score")
		if idx < 0 {
			continue
		}
		rest := line[idx+len("score"):]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			continue
		}
		value := rest[colon+1:]
		if slash := strings.Index(value, "/"); slash >= 0 {
			value = value[:slash]
		}
		digits := firstDigitRun(value)
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 0 || n > 100 {
			return DefaultScore, false
		}
		return n, true
	}
	return DefaultScore, false
}

func firstDigitRun(s string) string {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return ""
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	return s[start:end]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
