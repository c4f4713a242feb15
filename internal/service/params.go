package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"sune-tv/internal/model"
	"sune-tv/internal/repository"
)

// parseBoolParam accepts the usual query spellings of a boolean. An empty
// value means the filter is absent.
func parseBoolParam(field, raw string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case "true", "1", "yes", "on":
		v := true
		return &v, nil
	case "false", "0", "no", "off":
		v := false
		return &v, nil
	}
	return nil, invalid(field, "Select a valid choice. "+raw+" is not one of the available choices.")
}

func parseIDParam(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, invalid(field, "Select a valid choice. That choice is not one of the available choices.")
	}
	return &id, nil
}

func parseQualityParam(raw string) (*model.Quality, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	q := model.Quality(raw)
	if !q.IsValid() {
		return nil, invalid("quality", "Select a valid choice. "+raw+" is not one of the available choices.")
	}
	return &q, nil
}

// splitSearchTerms breaks a search parameter on whitespace and commas.
func splitSearchTerms(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// parseOrdering reads "-view_count,title" style orderings. Unknown fields
// are dropped; nil means the caller's default applies.
func parseOrdering(raw string) []repository.OrderField {
	var fields []repository.OrderField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		column := strings.TrimPrefix(part, "-")
		if !repository.SortableStreamColumns[column] {
			continue
		}
		fields = append(fields, repository.OrderField{Column: column, Desc: desc})
	}
	return fields
}

// imageURLSchemes are the schemes accepted for thumbnail and banner links.
var imageURLSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "ftps": true}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || !imageURLSchemes[strings.ToLower(u.Scheme)] {
		return invalid(field, "Enter a valid URL.")
	}
	return nil
}

// validateStreamURL restricts the playable url to http and https.
func validateStreamURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return invalid("url", "URL must start with http:// or https://")
	}
	return validateURL("url", raw)
}

func validateRating(rating *float64) error {
	if rating == nil {
		return nil
	}
	r := *rating
	if math.IsNaN(r) || r < 0 || r > 10 {
		return invalid("rating", "Rating must be between 0 and 10")
	}
	if math.Abs(r*10-math.Round(r*10)) > 1e-9 {
		return invalid("rating", "Ensure that there are no more than 1 decimal places.")
	}
	return nil
}

func validateQuality(raw string) error {
	if !model.Quality(raw).IsValid() {
		return invalid("quality", `"`+raw+`" is not a valid choice.`)
	}
	return nil
}
