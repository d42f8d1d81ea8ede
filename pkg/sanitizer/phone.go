package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"tably/pkg/locale"
)

// Phone normalizes a contact number to E.164 where it parses under one of
// the candidate regions for its prefix. Input that does not parse is
// returned trimmed but otherwise untouched; the phone field is optional
// and best-effort.
func Phone(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	for _, region := range locale.CandidateRegions(s) {
		parsed, err := phonenumbers.Parse(s, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return s
}
