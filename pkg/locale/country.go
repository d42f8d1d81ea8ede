// Package locale maps phone number prefixes to the regions guests are
// likely calling from, so national-format numbers can still be
// normalized.
package locale

import "strings"

type Country struct {
	Code          string   // ISO 3166-1 alpha-2 country code (e.g., "US", "GB")
	Name          string   // Human-readable country name
	PhonePrefixes []string // International dialing prefixes (e.g., ["+44", "44"])
}

var Countries = map[string]Country{
	"US": {
		Code:          "US",
		Name:          "United States",
		PhonePrefixes: []string{"+1", "1"},
	},
	"GB": {
		Code:          "GB",
		Name:          "United Kingdom",
		PhonePrefixes: []string{"+44", "44"},
	},
	"IL": {
		Code:          "IL",
		Name:          "Israel",
		PhonePrefixes: []string{"+972", "972"},
	},
}

// DefaultRegions is the region order tried when a phone number carries no
// recognizable international prefix.
var DefaultRegions = []string{"US", "GB"}

// InferRegionFromPhone returns the country code whose dialing prefix
// matches the number, or "" when no prefix matches.
func InferRegionFromPhone(phone string) string {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return country.Code
			}
		}
	}

	return ""
}

// CandidateRegions lists parse regions to try for a number, inferred
// region first.
func CandidateRegions(phone string) []string {
	if region := InferRegionFromPhone(phone); region != "" {
		regions := []string{region}
		for _, r := range DefaultRegions {
			if r != region {
				regions = append(regions, r)
			}
		}
		return regions
	}
	return DefaultRegions
}
