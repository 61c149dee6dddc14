package csvpush

import (
	"bufio"
	"errors"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

var (
	errNilWriter      = errors.New("csvpush: writer is nil")
	errWriterNoTarget = errors.New("csvpush: writer destination cannot be nil")
)

// Writer emits whole records. Every field is quoted, matching Write.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// UseCRLF writes records terminated with \r\n when set.
	UseCRLF bool

	scratch []byte
	err     error
}

// NewWriter creates a new Writer with internal buffering tuned for bulk writes.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:   bufio.NewWriterSize(w, defaultBufferSize),
		Comma: Comma,
		Quote: Quote,
	}
}

// Reset updates the underlying writer while preserving the configuration flags.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single record terminated with the configured newline sequence.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	comma := w.Comma
	if comma == 0 {
		comma = Comma
	}
	quote := w.Quote
	if quote == 0 {
		quote = Quote
	}

	line := w.scratch[:0]
	for i := range record {
		if i > 0 {
			line = append(line, comma)
		}
		line = AppendQuoted(line, []byte(record[i]), quote)
	}
	if w.UseCRLF {
		line = append(line, CR, LF)
	} else {
		line = append(line, LF)
	}
	w.scratch = line

	if _, err := w.dst.Write(line); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}
