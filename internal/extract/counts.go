package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var countShorthand = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([KMB]?)$`)

// ParseCount parses count shorthand like "1.2K", "3M", "4500", or "500+"
// into an integer. Returns nil for unparsable input.
func ParseCount(value string) *int {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "+")
	if m := countShorthand.FindStringSubmatch(s); m != nil {
		num, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		factor := 1.0
		switch m[2] {
		case "K":
			factor = 1e3
		case "M":
			factor = 1e6
		case "B":
			factor = 1e9
		}
		n := int(math.Round(num * factor))
		return &n
	}
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return nil
	}
	return &n
}

// ParseConnections parses connection shorthand. LinkedIn caps the displayed
// connection count at 500, so parsed values clamp there too.
func ParseConnections(value string) *int {
	n := ParseCount(value)
	if n == nil {
		return nil
	}
	if *n > 500 {
		capped := 500
		return &capped
	}
	return n
}
