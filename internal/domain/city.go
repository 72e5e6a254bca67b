package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// City is a municipality of the active city batch.
type City struct {
	Name      string  `json:"name"`
	UF        string  `json:"uf"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// NormalizeText folds s for accent-insensitive matching: "Itajaí " becomes "ITAJAI".
func NormalizeText(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.TrimSpace(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// MatchCity returns the first city whose folded name equals name or, failing that,
// contains it. Cities are checked in the order given.
func MatchCity(cities []City, name string) (City, bool) {
	want := NormalizeText(name)
	if want == "" {
		return City{}, false
	}
	for _, c := range cities {
		if NormalizeText(c.Name) == want {
			return c, true
		}
	}
	for _, c := range cities {
		if strings.Contains(NormalizeText(c.Name), want) {
			return c, true
		}
	}
	return City{}, false
}
