package kvscan

import (
	"strings"
	"unicode"
)

// NormalizeKey strips leading and trailing whitespace.
func NormalizeKey(key string) string {
	return strings.TrimSpace(key)
}

// NormalizeValue strips leading and trailing whitespace and collapses every inner
// run of two or more whitespace characters into a single space.
// A lone whitespace character is kept as is, so the result is stable under repeated calls.
func NormalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value))

	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !unicode.IsSpace(r) {
			sb.WriteRune(r)
			continue
		}

		j := i
		for j+1 < len(runes) && unicode.IsSpace(runes[j+1]) {
			j++
		}

		if j > i {
			sb.WriteByte(' ')
			i = j
		} else {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
