package utils

import (
	"strconv"
	"strings"
)

// MatchStatus checks a single status expression against a response code.
// "all" matches anything, a leading "!" negates, and the first three
// characters otherwise act as a prefix where x stands for any digit.
func MatchStatus(expr string, code int) bool {
	expr = strings.ToLower(strings.TrimSpace(expr))
	if expr == "all" {
		return true
	}
	if strings.HasPrefix(expr, "!") {
		return !matchPattern(expr[1:], strconv.Itoa(code))
	}
	return matchPattern(expr, strconv.Itoa(code))
}

func matchPattern(pattern, code string) bool {
	if len(pattern) > 3 {
		pattern = pattern[:3]
	}
	if len(code) < len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		p := pattern[i]
		if p == 'x' {
			if code[i] < '0' || code[i] > '9' {
				return false
			}
			continue
		}
		if p != code[i] {
			return false
		}
	}
	return true
}
