// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cost encodes free-text cost expressions ("(2) 3 Mana", "4 Metals")
// into the compact symbol strings printed on cards ("(2)MaMaMa", "MeMeMeMe").
//
// Only the first cost clause in a string is encoded. "2 Mana 1 Food" becomes
// "MaMa"; multi-clause costs are not supported.
package cost

import (
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// reserveCost matches a parenthesized reserve before the amount: "(2) 3 Mana".
	reserveCost = regexp.MustCompile(`\((\d+)\)\s*(\d+)\s*([A-Za-z]+)`)

	// plainCost matches an amount followed by a resource: "3 Mana".
	plainCost = regexp.MustCompile(`(\d+)\s*([A-Za-z]+)`)
)

// defaultAbbreviations maps lower-cased resource names to their symbols.
var defaultAbbreviations = map[string]string{
	"mana":   "Ma",
	"metals": "Me",
	"stone":  "St",
	"food":   "Fo",
}

// maxRepeat bounds the symbol count so a typo like "9999999 Mana" cannot
// allocate an unbounded string.
const maxRepeat = 1000

// Encoder converts cost expressions using a fixed abbreviation table.
// An Encoder is immutable and safe for concurrent use.
type Encoder struct {
	abbr map[string]string
}

var defaultEncoder = NewEncoder(nil)

// NewEncoder returns an Encoder whose table is the built-in abbreviations
// plus extra. Keys in extra are matched case-insensitively and override the
// built-in entries.
func NewEncoder(extra map[string]string) *Encoder {
	abbr := maps.Clone(defaultAbbreviations)
	for name, symbol := range extra {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || symbol == "" {
			continue
		}
		abbr[name] = symbol
	}
	return &Encoder{abbr: abbr}
}

// Encode converts raw with the built-in abbreviation table.
func Encode(raw string) string {
	return defaultEncoder.Encode(raw)
}

// Encode converts a cost expression:
//
//   - "" or whitespace only -> ""
//   - "(P) N Resource"      -> "(P)" followed by the symbol N times
//   - "N Resource"          -> the symbol N times
//   - anything else         -> raw with all whitespace removed
func (e *Encoder) Encode(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if m := reserveCost.FindStringSubmatch(s); m != nil {
		return "(" + m[1] + ")" + e.repeat(m[2], m[3])
	}

	if m := plainCost.FindStringSubmatch(s); m != nil {
		return e.repeat(m[1], m[2])
	}

	return stripSpace(s)
}

// Abbreviation returns the symbol for resource. Unknown resources use their
// first two letters, capitalized.
func (e *Encoder) Abbreviation(resource string) string {
	if symbol, ok := e.abbr[strings.ToLower(resource)]; ok {
		return symbol
	}
	r := []rune(resource)
	if len(r) > 2 {
		r = r[:2]
	}
	return capitalize(string(r))
}

func (e *Encoder) repeat(count, resource string) string {
	n, err := strconv.Atoi(count)
	if err != nil || n <= 0 {
		return ""
	}
	if n > maxRepeat {
		n = maxRepeat
	}
	return strings.Repeat(e.Abbreviation(resource), n)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
