package clipboard

import (
	"bytes"
	"errors"
	"testing"
)

type recordingCopier struct {
	copied []string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = append(copier.copied, text)
	return copier.err
}

func TestTeeWriterCopiesEverythingWritten(t *testing.T) {
	var output bytes.Buffer
	copier := &recordingCopier{}
	writer := NewTeeWriter(&output, copier)
	_, _ = writer.Write([]byte("path\tline\n"))
	_, _ = writer.Write([]byte("bzr.py\t15\n"))
	if err := writer.Copy(); err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if output.String() != "path\tline\nbzr.py\t15\n" {
		t.Fatalf("unexpected passthrough %q", output.String())
	}
	if len(copier.copied) != 1 || copier.copied[0] != output.String() {
		t.Fatalf("unexpected clipboard content %q", copier.copied)
	}
}

func TestTeeWriterReportsCopyFailure(t *testing.T) {
	copier := &recordingCopier{err: errors.New("no display")}
	writer := NewTeeWriter(&bytes.Buffer{}, copier)
	if err := writer.Copy(); err == nil {
		t.Fatalf("expected copy failure")
	}
	if err := NewTeeWriter(&bytes.Buffer{}, nil).Copy(); err != nil {
		t.Fatalf("nil copier must be a no-op, got %v", err)
	}
}
