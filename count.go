package bilicopy

import (
	"regexp"
	"strconv"
	"strings"
)

var unitSuffixRe = regexp.MustCompile(`(\d+(?:\.\d+)?)([万亿])`)

// Count is a view/like/follower counter as shown on the page. It is either a
// number (the text carried a 万 or 亿 suffix) or the raw text, unmodified.
type Count struct {
	raw     string
	value   float64
	numeric bool
}

// ParseCount converts the first "<number>万" or "<number>亿" found in s into
// its numeric value. Text without a suffix is kept as-is, so "5000" stays
// the string "5000".
func ParseCount(s string) Count {
	m := unitSuffixRe.FindStringSubmatch(s)
	if m == nil {
		return Count{raw: s}
	}

	shift := 4
	if m[2] == "亿" {
		shift = 8
	}

	v, err := strconv.ParseFloat(shiftDecimal(m[1], shift), 64)
	if err != nil {
		return Count{raw: s}
	}
	return Count{raw: s, value: v, numeric: true}
}

// shiftDecimal moves the decimal point of num right by n places on the
// digits themselves. "12.3" shifted by 4 is "123000".
func shiftDecimal(num string, n int) string {
	intPart, frac, _ := strings.Cut(num, ".")
	if len(frac) <= n {
		return intPart + frac + strings.Repeat("0", n-len(frac))
	}
	return intPart + frac[:n] + "." + frac[n:]
}

// IsNumeric reports whether a unit suffix was matched.
func (c Count) IsNumeric() bool { return c.numeric }

// Value returns the scaled number. Zero for raw counts.
func (c Count) Value() float64 { return c.value }

// Raw returns the text the count was parsed from.
func (c Count) Raw() string { return c.raw }

// String renders a numeric count without exponent or trailing zeros, and a
// raw count as its original text.
func (c Count) String() string {
	if !c.numeric {
		return c.raw
	}
	return strconv.FormatFloat(c.value, 'f', -1, 64)
}
