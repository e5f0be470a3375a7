// Package output renders lint reports and build progress for the command line.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/lintdoc/internal/pylint"
	"github.com/temirov/lintdoc/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "
	yamlIndent   = 2

	rawColumnSeparator = "\t"
	rawLineTerminator  = "\n"

	xmlHeader         = xml.Header
	xmlRootElement    = "messages"
	summaryLineFormat = "Summary: %d %s"
	messageSingular   = "message"
	messagePlural     = "messages"

	unsupportedReportFormat = "unsupported report format %q"
)

type xmlReport struct {
	XMLName  xml.Name        `xml:"messages"`
	Messages []pylint.Record `xml:"message"`
}

// RenderRecords renders records in format: raw, json, xml or yaml.
func RenderRecords(format string, records []pylint.Record) (string, error) {
	switch strings.ToLower(format) {
	case types.FormatRaw, "":
		return RenderRecordsRaw(records), nil
	case types.FormatJSON:
		return RenderRecordsJSON(records)
	case types.FormatXML:
		return RenderRecordsXML(records)
	case types.FormatYAML:
		return RenderRecordsYAML(records)
	default:
		return "", fmt.Errorf(unsupportedReportFormat, format)
	}
}

// RenderRecordsRaw returns the message list columns as tab-separated lines
// followed by a summary line.
func RenderRecordsRaw(records []pylint.Record) string {
	var buffer bytes.Buffer
	buffer.WriteString(strings.Join(types.MessageListColumns, rawColumnSeparator) + rawLineTerminator)
	for _, record := range records {
		buffer.WriteString(strings.Join([]string{
			record.File,
			strconv.Itoa(record.Line),
			record.MessageID,
			record.Symbol,
			record.Object,
			record.Message,
		}, rawColumnSeparator) + rawLineTerminator)
	}
	buffer.WriteString(FormatSummaryLine(records) + rawLineTerminator)
	return buffer.String()
}

// RenderRecordsJSON returns records as an indented JSON array.
func RenderRecordsJSON(records []pylint.Record) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(nonNilRecords(records), indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", fmt.Errorf("encode json report: %w", jsonEncodeError)
	}
	return string(encoded) + rawLineTerminator, nil
}

// RenderRecordsXML returns records as an indented XML document.
func RenderRecordsXML(records []pylint.Record) (string, error) {
	report := xmlReport{XMLName: xml.Name{Local: xmlRootElement}, Messages: records}
	encoded, xmlMarshalError := xml.MarshalIndent(report, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", fmt.Errorf("encode xml report: %w", xmlMarshalError)
	}
	return xmlHeader + string(encoded) + rawLineTerminator, nil
}

// RenderRecordsYAML returns records as a YAML sequence.
func RenderRecordsYAML(records []pylint.Record) (string, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlIndent)
	if encodeError := encoder.Encode(nonNilRecords(records)); encodeError != nil {
		return "", fmt.Errorf("encode yaml report: %w", encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return "", fmt.Errorf("encode yaml report: %w", closeError)
	}
	return buffer.String(), nil
}

// FormatSummaryLine counts records per severity category.
func FormatSummaryLine(records []pylint.Record) string {
	noun := messagePlural
	if len(records) == 1 {
		noun = messageSingular
	}
	line := fmt.Sprintf(summaryLineFormat, len(records), noun)
	if len(records) == 0 {
		return line
	}
	counts := map[string]int{}
	for _, record := range records {
		counts[record.Category()]++
	}
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	parts := make([]string, 0, len(categories))
	for _, category := range categories {
		parts = append(parts, fmt.Sprintf("%s: %d", category, counts[category]))
	}
	return line + " (" + strings.Join(parts, ", ") + ")"
}

func nonNilRecords(records []pylint.Record) []pylint.Record {
	if records == nil {
		return []pylint.Record{}
	}
	return records
}
