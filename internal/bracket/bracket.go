package bracket

import (
	"math"
	"strconv"
	"strings"
)

// Bracket is one of the ten regulatory (ANS) age bands used for per-life pricing.
type Bracket string

const (
	B0to18  Bracket = "0-18"
	B19to23 Bracket = "19-23"
	B24to28 Bracket = "24-28"
	B29to33 Bracket = "29-33"
	B34to38 Bracket = "34-38"
	B39to43 Bracket = "39-43"
	B44to48 Bracket = "44-48"
	B49to53 Bracket = "49-53"
	B54to58 Bracket = "54-58"
	B59Plus Bracket = "59+"
)

// Default is used when an age cannot be parsed.
const Default = B29to33

// band is an inclusive upper age bound; the last band has no bound.
type band struct {
	bracket Bracket
	min     int
	max     int
}

var bands = []band{
	{B0to18, 0, 18},
	{B19to23, 19, 23},
	{B24to28, 24, 28},
	{B29to33, 29, 33},
	{B34to38, 34, 38},
	{B39to43, 39, 43},
	{B44to48, 44, 48},
	{B49to53, 49, 53},
	{B54to58, 54, 58},
	{B59Plus, 59, -1},
}

// All returns the canonical brackets in ascending order.
func All() []Bracket {
	out := make([]Bracket, len(bands))
	for i, b := range bands {
		out[i] = b.bracket
	}
	return out
}

// Bounds returns the inclusive age range of b. hi is -1 for the open-ended
// band. ok is false for labels outside the canonical set.
func Bounds(b Bracket) (lo, hi int, ok bool) {
	for _, bd := range bands {
		if bd.bracket == b {
			return bd.min, bd.max, true
		}
	}
	return 0, 0, false
}

// Index orders brackets; unknown labels sort last.
func Index(b Bracket) int {
	for i, bd := range bands {
		if bd.bracket == b {
			return i
		}
	}
	return len(bands)
}

// IsLabel reports whether raw already looks like a bracket label.
func IsLabel(raw string) bool {
	return strings.ContainsAny(raw, "-+")
}

// Normalize maps a raw age or an existing bracket label to a bracket.
//
// Labels (anything containing '-' or '+') pass through untouched so catalog
// keys written by hand still match. Otherwise the leading integer is read
// and trailing text ignored, so "34 anos" and "4.5" both parse. Input with
// no leading digits falls back to Default instead of failing the household.
func Normalize(raw string) Bracket {
	raw = strings.TrimSpace(raw)
	if IsLabel(raw) {
		return Bracket(raw)
	}

	age, ok := leadingInt(raw)
	if !ok {
		return Default
	}
	return FromAge(age)
}

// leadingInt reads the digits at the start of s. Values too large for an
// int saturate, which still lands in the open-ended band.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}

// FromAge maps an integer age onto its band.
func FromAge(age int) Bracket {
	for _, bd := range bands {
		if bd.max >= 0 && age <= bd.max {
			return bd.bracket
		}
	}
	return B59Plus
}

// NormalizeAll normalizes every raw age, preserving order.
func NormalizeAll(raw []string) []Bracket {
	out := make([]Bracket, len(raw))
	for i, r := range raw {
		out[i] = Normalize(r)
	}
	return out
}
