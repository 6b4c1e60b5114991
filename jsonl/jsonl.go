// Package jsonl persists diff analyses as JSON Lines, one analysis per line.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/diffscope"
)

// Loader reads diff analyses from JSONL files.
type Loader struct{}

// NewLoader creates a new JSONL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every analysis from the file at path. A malformed line fails
// the whole load with its line number.
func (l *Loader) Load(path string) ([]diffscope.DiffAnalysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return l.Read(f)
}

// Read decodes analyses from r until EOF. Blank lines are skipped.
func (l *Loader) Read(r io.Reader) ([]diffscope.DiffAnalysis, error) {
	var analyses []diffscope.DiffAnalysis

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var analysis diffscope.DiffAnalysis
		if err := json.Unmarshal([]byte(line), &analysis); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		analyses = append(analyses, analysis)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return analyses, nil
}

// Writer appends diff analyses to an io.Writer as JSONL.
type Writer struct {
	w io.Writer
}

// NewWriter creates a writer emitting one analysis per line.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes a single analysis followed by a newline.
func (w *Writer) Write(analysis *diffscope.DiffAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}
	return nil
}
