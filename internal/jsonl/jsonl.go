// Package jsonl reads and writes newline-delimited JSON records: one object
// per line, no envelope. Records are decoded one at a time so batch runs keep
// a bounded memory footprint regardless of input size.
package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxLineBytes = 4 << 20

// LineError reports a single undecodable line. Callers can isolate it and
// keep consuming the stream; any other decoder error means the stream itself
// is broken.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("jsonl: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Decoder yields records from a JSONL stream in file order.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Decoder{scanner: scanner}
}

// Next returns the next record. Blank lines are skipped. io.EOF signals a
// clean end of input; a *LineError marks one bad line.
func (d *Decoder) Next() (map[string]any, error) {
	for d.scanner.Scan() {
		d.line++
		text := strings.TrimSpace(d.scanner.Text())
		if text == "" {
			continue
		}
		record := map[string]any{}
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return nil, &LineError{Line: d.line, Err: err}
		}
		return record, nil
	}
	if err := d.scanner.Err(); err != nil {
		return nil, fmt.Errorf("jsonl: read input: %w", err)
	}
	return nil, io.EOF
}

// Line returns the number of the last line consumed.
func (d *Decoder) Line() int { return d.line }

// Encoder writes one record per line.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) Encode(record map[string]any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("jsonl: marshal record: %w", err)
	}
	if _, err := e.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("jsonl: write record: %w", err)
	}
	return nil
}
