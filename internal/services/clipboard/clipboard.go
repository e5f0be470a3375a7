// Package clipboard copies command output to the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// Copier copies text to the clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier with github.com/atotto/clipboard.
type Service struct{}

// NewService constructs the system clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf("clipboard: %w", writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)

// TeeWriter passes writes through to an output writer and collects them so
// the complete output can be copied once the command finishes.
type TeeWriter struct {
	output io.Writer
	copier Copier
	buffer bytes.Buffer
}

// NewTeeWriter returns a TeeWriter over output that copies through copier.
func NewTeeWriter(output io.Writer, copier Copier) *TeeWriter {
	return &TeeWriter{output: output, copier: copier}
}

// Write forwards data to the output writer and retains a copy.
func (writer *TeeWriter) Write(data []byte) (int, error) {
	writer.buffer.Write(data)
	return writer.output.Write(data)
}

// Copy sends everything written so far to the clipboard.
func (writer *TeeWriter) Copy() error {
	if writer.copier == nil {
		return nil
	}
	if copyError := writer.copier.Copy(writer.buffer.String()); copyError != nil {
		return fmt.Errorf("copy output to clipboard: %w", copyError)
	}
	return nil
}
