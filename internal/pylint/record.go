// Package pylint builds pylint command lines and interprets its parseable output.
package pylint

import "strings"

// Severity letters emitted by pylint.
const (
	SeverityConvention = "C"
	SeverityRefactor   = "R"
	SeverityWarning    = "W"
	SeverityError      = "E"
	SeverityFatal      = "F"
	SeverityInfo       = "I"
)

var severityCategories = map[string]string{
	SeverityConvention: "convention",
	SeverityRefactor:   "refactor",
	SeverityWarning:    "warning",
	SeverityError:      "error",
	SeverityFatal:      "fatal",
	SeverityInfo:       "info",
}

const hintSeparator = ", "

// Record is one diagnostic parsed from a line of pylint output.
//
// Number is the numeric part of the message id with leading zeros dropped
// (E0401 gives 401); MessageID keeps the literal form.
type Record struct {
	File      string `json:"path" xml:"path" yaml:"path"`
	Line      int    `json:"line" xml:"line" yaml:"line"`
	Severity  string `json:"severity" xml:"severity" yaml:"severity"`
	Number    int    `json:"number" xml:"number" yaml:"number"`
	MessageID string `json:"msg_id" xml:"msg_id" yaml:"msg_id"`
	Symbol    string `json:"symbol,omitempty" xml:"symbol,omitempty" yaml:"symbol,omitempty"`
	Object    string `json:"obj,omitempty" xml:"obj,omitempty" yaml:"obj,omitempty"`
	Hint      string `json:"hint,omitempty" xml:"hint,omitempty" yaml:"hint,omitempty"`
	Message   string `json:"msg" xml:"msg" yaml:"msg"`
}

// HasHint reports whether the bracket carried symbol or object context.
func (record Record) HasHint() bool {
	return record.Hint != ""
}

// Category returns the human-readable name of the severity letter.
func (record Record) Category() string {
	if category, known := severityCategories[record.Severity]; known {
		return category
	}
	return strings.ToLower(record.Severity)
}

func composeHint(symbol string, object string) string {
	switch {
	case symbol != "" && object != "":
		return symbol + hintSeparator + object
	case symbol != "":
		return symbol
	default:
		return object
	}
}
