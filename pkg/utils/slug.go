package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts s into a URL-safe slug: accents are decomposed and
// dropped, anything that is not a letter, digit, underscore, space or hyphen
// is removed, and runs of spaces/hyphens collapse into a single hyphen.
//
//	Slugify("Big Buck Bunny")  == "big-buck-bunny"
//	Slugify("Café -- Noir!")  == "cafe-noir"
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	ascii = slugInvalidChars.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = slugSeparators.ReplaceAllString(strings.TrimSpace(ascii), "-")
	return strings.Trim(ascii, "-_")
}
