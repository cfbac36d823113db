package fallback

import "regexp"

// ErrorParser extracts the offending field name from a backend error. The
// error phrasing is backend-specific, so the parser is pluggable: alternate
// backends supply their own implementation without touching the strategy
// state machine.
type ErrorParser interface {
	// InvalidField returns the field name named by err and true when err is
	// an invalid-field rejection, or ("", false) for any other error.
	InvalidField(err error) (string, bool)
}

type quotedFieldParser struct {
	patterns []*regexp.Regexp
}

// NewQuotedFieldParser returns the default ErrorParser, matching the quoted
// identifier following "Invalid field" in the backend's error text, e.g.
//
//	Invalid field 'ghost_field' on model 'widget'
//	Invalid field "ghost_field"
func NewQuotedFieldParser() ErrorParser {
	return &quotedFieldParser{patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)invalid field\s+'([^']+)'`),
		regexp.MustCompile(`(?i)invalid field\s+"([^"]+)"`),
		regexp.MustCompile("(?i)invalid field\\s+`([^`]+)`"),
		regexp.MustCompile(`(?i)invalid field\s+([A-Za-z0-9_.]+)`),
	}}
}

func (p *quotedFieldParser) InvalidField(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	text := err.Error()
	for _, re := range p.patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}
