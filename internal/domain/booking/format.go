package booking

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	cardGroupSize      = 4
	cardDisplayMaxLen  = 19 // 16 digits + 3 separators
	cvvMaxLen          = 4
	defaultGuestsCount = 1
)

func passThrough(raw string) string { return raw }

// FormatCardNumber regroups raw card input into blocks of four separated by single spaces.
// Whitespace is removed first; other characters are grouped as-is and left for the
// validator to reject. The result never exceeds 19 characters.
func FormatCardNumber(raw string) string {
	compact := make([]rune, 0, len(raw))
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			compact = append(compact, r)
		}
	}

	var b strings.Builder
	for i, r := range compact {
		if i > 0 && i%cardGroupSize == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	grouped := []rune(b.String())
	if len(grouped) > cardDisplayMaxLen {
		grouped = grouped[:cardDisplayMaxLen]
	}
	return string(grouped)
}

// FormatCVV keeps ASCII digits only, at most four of them.
func FormatCVV(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() == cvvMaxLen {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseGuests reads the leading integer of raw input. Anything that does not yield a
// positive count becomes 1.
func ParseGuests(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return defaultGuestsCount
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return defaultGuestsCount
	}
	return n
}

func formatGuests(raw string) string {
	return strconv.Itoa(ParseGuests(raw))
}
