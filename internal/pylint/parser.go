package pylint

import (
	"regexp"
	"strconv"
	"strings"
)

// diagnosticLinePattern matches the parseable format:
//
//	<file>:<line>: [<severity><number>(<symbol>)?(, <object>)?] <message>
var diagnosticLinePattern = regexp.MustCompile(`^(?P<file>.+?):(?P<line>\d+): \[(?i:(?P<severity>[a-z]))(?P<number>\d+)(?:\((?P<symbol>[^)]*)\))?(?:, (?P<object>[^\]]*))?\] (?P<message>.*)$`)

var (
	fileGroup     = diagnosticLinePattern.SubexpIndex("file")
	lineGroup     = diagnosticLinePattern.SubexpIndex("line")
	severityGroup = diagnosticLinePattern.SubexpIndex("severity")
	numberGroup   = diagnosticLinePattern.SubexpIndex("number")
	symbolGroup   = diagnosticLinePattern.SubexpIndex("symbol")
	objectGroup   = diagnosticLinePattern.SubexpIndex("object")
	messageGroup  = diagnosticLinePattern.SubexpIndex("message")
)

// Mode selects how much of the output a Parser interprets.
type Mode int

const (
	// ModeScanAll yields one record per matching line.
	ModeScanAll Mode = iota
	// ModeFirstMatch stops after the first matching line.
	ModeFirstMatch
)

// Parser interprets pylint parseable output.
type Parser struct {
	Mode Mode
}

// Parse returns the records found in rawOutput. Lines that do not match are
// skipped whatever their length. Parsing the same text again yields the same records.
func (parser Parser) Parse(rawOutput string) []Record {
	var records []Record
	for _, line := range strings.Split(rawOutput, "\n") {
		record, matched := ParseLine(line)
		if !matched {
			continue
		}
		records = append(records, record)
		if parser.Mode == ModeFirstMatch {
			break
		}
	}
	return records
}

// Parse scans every line of rawOutput.
func Parse(rawOutput string) []Record {
	return Parser{Mode: ModeScanAll}.Parse(rawOutput)
}

// ParseFirst returns the first record in rawOutput.
func ParseFirst(rawOutput string) (Record, bool) {
	records := Parser{Mode: ModeFirstMatch}.Parse(rawOutput)
	if len(records) == 0 {
		return Record{}, false
	}
	return records[0], true
}

// ParseLine interprets a single line of output.
func ParseLine(line string) (Record, bool) {
	matches := diagnosticLinePattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if matches == nil {
		return Record{}, false
	}
	lineNumber, lineError := strconv.Atoi(matches[lineGroup])
	if lineError != nil || lineNumber < 1 {
		return Record{}, false
	}
	messageNumber, numberError := strconv.Atoi(matches[numberGroup])
	if numberError != nil {
		return Record{}, false
	}
	severity := strings.ToUpper(matches[severityGroup])
	symbol := strings.TrimSpace(matches[symbolGroup])
	object := strings.TrimSpace(matches[objectGroup])
	return Record{
		File:      matches[fileGroup],
		Line:      lineNumber,
		Severity:  severity,
		Number:    messageNumber,
		MessageID: severity + matches[numberGroup],
		Symbol:    symbol,
		Object:    object,
		Hint:      composeHint(symbol, object),
		Message:   matches[messageGroup],
	}, true
}
