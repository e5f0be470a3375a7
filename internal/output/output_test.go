package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/temirov/lintdoc/internal/output"
	"github.com/temirov/lintdoc/internal/pylint"
)

var sampleRecords = []pylint.Record{
	{File: "bzr.py", Line: 15, Severity: "E", Number: 401, MessageID: "E0401", Symbol: "import-error", Hint: "import-error", Message: "Unable to import 'bzrlib.branch'"},
	{File: "bzr.py", Line: 29, Severity: "C", Number: 111, MessageID: "C0111", Symbol: "missing-docstring", Object: "do_bzr_cmd", Hint: "missing-docstring, do_bzr_cmd", Message: "Missing function docstring"},
}

// rawReportExpected defines the expected raw rendering of sampleRecords.
const rawReportExpected = "path\tline\tmsg_id\tsymbol\tobj\tmsg\n" +
	"bzr.py\t15\tE0401\timport-error\t\tUnable to import 'bzrlib.branch'\n" +
	"bzr.py\t29\tC0111\tmissing-docstring\tdo_bzr_cmd\tMissing function docstring\n" +
	"Summary: 2 messages (convention: 1, error: 1)\n"

// TestRenderRecordsRaw verifies the tab-separated report.
func TestRenderRecordsRaw(testingInstance *testing.T) {
	rendered, renderError := output.RenderRecords("raw", sampleRecords)
	if renderError != nil {
		testingInstance.Fatalf("RenderRecords failed: %v", renderError)
	}
	if rendered != rawReportExpected {
		testingInstance.Fatalf("unexpected raw report:\n%s", rendered)
	}
}

// TestRenderRecordsJSON verifies the JSON keys follow the table columns.
func TestRenderRecordsJSON(testingInstance *testing.T) {
	rendered, renderError := output.RenderRecords("json", sampleRecords)
	if renderError != nil {
		testingInstance.Fatalf("RenderRecords failed: %v", renderError)
	}
	var decoded []map[string]interface{}
	if decodeError := json.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		testingInstance.Fatalf("invalid json: %v", decodeError)
	}
	if len(decoded) != 2 || decoded[1]["obj"] != "do_bzr_cmd" || decoded[0]["msg_id"] != "E0401" {
		testingInstance.Fatalf("unexpected json: %s", rendered)
	}
	if _, hasObject := decoded[0]["obj"]; hasObject {
		testingInstance.Fatalf("expected empty object to be omitted: %s", rendered)
	}
}

// TestRenderRecordsJSONEmpty verifies an empty report is an empty array.
func TestRenderRecordsJSONEmpty(testingInstance *testing.T) {
	rendered, renderError := output.RenderRecordsJSON(nil)
	if renderError != nil || strings.TrimSpace(rendered) != "[]" {
		testingInstance.Fatalf("unexpected empty json %q, %v", rendered, renderError)
	}
}

// TestRenderRecordsXML verifies the XML envelope.
func TestRenderRecordsXML(testingInstance *testing.T) {
	rendered, renderError := output.RenderRecords("XML", sampleRecords)
	if renderError != nil {
		testingInstance.Fatalf("RenderRecords failed: %v", renderError)
	}
	for _, fragment := range []string{"<?xml", "<messages>", "<message>", "<path>bzr.py</path>", "<msg_id>C0111</msg_id>", "<obj>do_bzr_cmd</obj>", "</messages>"} {
		if !strings.Contains(rendered, fragment) {
			testingInstance.Fatalf("expected %q in:\n%s", fragment, rendered)
		}
	}
}

// TestRenderRecordsYAML verifies the YAML sequence decodes back into records.
func TestRenderRecordsYAML(testingInstance *testing.T) {
	rendered, renderError := output.RenderRecords("yaml", sampleRecords)
	if renderError != nil {
		testingInstance.Fatalf("RenderRecords failed: %v", renderError)
	}
	if !strings.HasPrefix(rendered, "- path: bzr.py\n") {
		testingInstance.Fatalf("unexpected yaml:\n%s", rendered)
	}
	var decoded []pylint.Record
	if decodeError := yaml.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		testingInstance.Fatalf("invalid yaml: %v", decodeError)
	}
	if len(decoded) != 2 || decoded[1].Object != "do_bzr_cmd" || decoded[0].Number != 401 {
		testingInstance.Fatalf("unexpected decoded records: %+v", decoded)
	}
}

// TestRenderRecordsUnknownFormat verifies unsupported formats fail.
func TestRenderRecordsUnknownFormat(testingInstance *testing.T) {
	if _, renderError := output.RenderRecords("toml", sampleRecords); renderError == nil {
		testingInstance.Fatalf("expected an error for an unknown format")
	}
}

// TestFormatSummaryLine verifies singular and empty summaries.
func TestFormatSummaryLine(testingInstance *testing.T) {
	if line := output.FormatSummaryLine(nil); line != "Summary: 0 messages" {
		testingInstance.Fatalf("unexpected empty summary %q", line)
	}
	if line := output.FormatSummaryLine(sampleRecords[:1]); line != "Summary: 1 message (error: 1)" {
		testingInstance.Fatalf("unexpected summary %q", line)
	}
}

// TestStreamRenderers verifies progress output for both stream formats.
func TestStreamRenderers(testingInstance *testing.T) {
	var stdout, stderr bytes.Buffer
	renderer := output.NewRawStreamRenderer(&stdout, &stderr)
	events := []output.Event{
		{Kind: output.EventKindDocument, Document: "index", Path: "_build/index.html"},
		{Kind: output.EventKindWarning, Message: "skipped notes.rst"},
		{Kind: output.EventKindDocument, Document: "api", Path: "_build/api.html"},
	}
	for _, event := range events {
		if handleError := renderer.Handle(event); handleError != nil {
			testingInstance.Fatalf("Handle failed: %v", handleError)
		}
	}
	if flushError := renderer.Flush(); flushError != nil {
		testingInstance.Fatalf("Flush failed: %v", flushError)
	}
	expectedStdout := "index -> _build/index.html\napi -> _build/api.html\nSummary: 2 documents written\n"
	if stdout.String() != expectedStdout {
		testingInstance.Fatalf("unexpected stdout %q", stdout.String())
	}
	if stderr.String() != "skipped notes.rst\n" {
		testingInstance.Fatalf("unexpected stderr %q", stderr.String())
	}

	var jsonStdout bytes.Buffer
	jsonRenderer := output.NewJSONStreamRenderer(&jsonStdout, nil)
	if handleError := jsonRenderer.Handle(events[0]); handleError != nil {
		testingInstance.Fatalf("Handle failed: %v", handleError)
	}
	if jsonStdout.String() != `{"kind":"document","document":"index","path":"_build/index.html"}`+"\n" {
		testingInstance.Fatalf("unexpected json stream %q", jsonStdout.String())
	}
}
