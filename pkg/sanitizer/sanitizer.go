// Package sanitizer normalizes free-text booking input before validation.
// Sanitization never rejects; it only cleans. Rejection is the validator's
// job.
package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControl    = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	reMultiSpace = regexp.MustCompile(`\s+`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func stripControl(s string) string {
	return reControl.ReplaceAllString(s, " ")
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

// CustomerName cleans a customer name: control characters dropped, runs of
// whitespace collapsed, surrounding whitespace trimmed. Case is preserved;
// the name is displayed back to the customer as entered.
func CustomerName(input string) string {
	p := Pipeline{
		stripControl,
		collapseSpaces,
		trim,
	}
	return p.Apply(input)
}

// Notes cleans free-form special requests the same way as names.
func Notes(input string) string {
	return CustomerName(input)
}

// Email lowercases and trims an email address.
func Email(input string) string {
	p := Pipeline{
		trim,
		strings.ToLower,
	}
	return p.Apply(input)
}
