package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf16"

	"github.com/goliatone/go-formstep/pkg/model"
)

// MinimumAge is the youngest age, in whole calendar years, the dob rule accepts.
const MinimumAge = 18

const (
	MessageName    = "Name must contain only letters and spaces."
	MessageDOB     = "You must be at least 18 years old."
	MessageEmail   = "Please enter a valid email address."
	MessagePhone   = "Please enter a valid 10-digit phone number."
	MessageAddress = "Address must be at least 10 characters long."
	MessageGender  = "Please select your gender."
)

var (
	// Letters plus the whitespace set of browser regular expressions, which
	// is wider than RE2's ASCII \s.
	namePattern  = regexp.MustCompile(`^[a-zA-Z\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// dateLayouts are tried in order when parsing a date of birth. The first one
// matches what a browser date input submits.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// Rule pairs a field predicate with the message shown when it fails.
type Rule struct {
	Field   model.FieldID
	Message string
	Check   func(value string, now time.Time) bool
}

// DefaultRules returns the built-in rule table, one rule per field.
func DefaultRules() []Rule {
	return []Rule{
		{Field: model.FieldName, Message: MessageName, Check: validName},
		{Field: model.FieldDOB, Message: MessageDOB, Check: oldEnough},
		{Field: model.FieldEmail, Message: MessageEmail, Check: validEmail},
		{Field: model.FieldPhone, Message: MessagePhone, Check: validPhone},
		{Field: model.FieldAddress, Message: MessageAddress, Check: validAddress},
		{Field: model.FieldGender, Message: MessageGender, Check: selected},
	}
}

func validName(value string, _ time.Time) bool {
	return namePattern.MatchString(value)
}

func validEmail(value string, _ time.Time) bool {
	return emailPattern.MatchString(value)
}

func validPhone(value string, _ time.Time) bool {
	return phonePattern.MatchString(value)
}

// validAddress measures length in UTF-16 code units, as a browser does.
func validAddress(value string, _ time.Time) bool {
	trimmed := strings.TrimFunc(value, formSpace)
	return len(utf16.Encode([]rune(trimmed))) >= 10
}

// formSpace reports whether r is whitespace to a browser trim.
func formSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func selected(value string, _ time.Time) bool {
	return value != ""
}

func oldEnough(value string, now time.Time) bool {
	age, ok := Age(value, now)
	return ok && age >= MinimumAge
}

// Age subtracts the birth year from the current year. Month and day are
// ignored, so a birthday later this year already counts as passed. The second
// result is false when dob cannot be parsed.
func Age(dob string, now time.Time) (int, bool) {
	birth, ok := parseDate(dob)
	if !ok {
		return 0, false
	}
	return now.Year() - birth.Year(), true
}

func parseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
