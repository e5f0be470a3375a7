package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// EventKind classifies a build progress event.
type EventKind string

// Build progress event kinds.
const (
	EventKindDocument EventKind = "document"
	EventKindWarning  EventKind = "warning"
	EventKindSummary  EventKind = "summary"
)

// Event is one build progress notification.
type Event struct {
	Kind      EventKind `json:"kind"`
	Document  string    `json:"document,omitempty"`
	Path      string    `json:"path,omitempty"`
	Message   string    `json:"message,omitempty"`
	Documents int       `json:"documents,omitempty"`
}

// StreamRenderer prints build progress as events arrive.
type StreamRenderer interface {
	Handle(event Event) error
	Flush() error
}

type rawStreamRenderer struct {
	stdout    io.Writer
	stderr    io.Writer
	documents int
}

// NewRawStreamRenderer prints one line per written document and a closing summary.
// Warnings go to stderr.
func NewRawStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &rawStreamRenderer{stdout: stdout, stderr: stderr}
}

func (renderer *rawStreamRenderer) Handle(event Event) error {
	switch event.Kind {
	case EventKindWarning:
		if renderer.stderr != nil {
			_, writeError := fmt.Fprintln(renderer.stderr, event.Message)
			return writeError
		}
	case EventKindDocument:
		renderer.documents++
		if renderer.stdout != nil {
			_, writeError := fmt.Fprintf(renderer.stdout, "%s -> %s\n", event.Document, event.Path)
			return writeError
		}
	case EventKindSummary:
		if event.Documents > 0 {
			renderer.documents = event.Documents
		}
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	_, writeError := fmt.Fprintf(renderer.stdout, "Summary: %d documents written\n", renderer.documents)
	return writeError
}

type jsonStreamRenderer struct {
	encoder *json.Encoder
	stderr  io.Writer
}

// NewJSONStreamRenderer writes every event as one JSON object per line.
func NewJSONStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &jsonStreamRenderer{encoder: json.NewEncoder(stdout), stderr: stderr}
}

func (renderer *jsonStreamRenderer) Handle(event Event) error {
	if event.Kind == EventKindWarning && renderer.stderr != nil {
		fmt.Fprintln(renderer.stderr, event.Message)
	}
	if encodeError := renderer.encoder.Encode(event); encodeError != nil {
		return fmt.Errorf("encode %s event: %w", event.Kind, encodeError)
	}
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	return nil
}
