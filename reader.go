package csvpush

import (
	"errors"
	"io"
)

// Reader pulls CSV records from an io.Reader by pushing fixed-size chunks
// through a Parser. It is the pull-style counterpart to Parser for callers
// that want whole records.
type Reader struct {
	src    io.Reader
	parser *Parser

	// ChunkSize is the number of bytes read from src per Parse call. Default is 1024.
	ChunkSize int
	// FieldsPerRecord expects each record to contain this many fields. Zero
	// captures the width of the first record, a negative value disables the check.
	FieldsPerRecord int

	buf     []byte
	offset  int
	record  []string
	pending [][]string
	err     error

	onField FieldFunc
	onRow   RowFunc
}

// NewReader creates a Reader that consumes CSV data from r, panicking if r is
// nil. The underlying parser starts with default settings; configure it
// through Parser before the first Read.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("csvpush: reader source cannot be nil")
	}
	p, _ := NewParser(0)

	rd := &Reader{
		src:       r,
		parser:    p,
		ChunkSize: defaultBufferSize,
		pending:   make([][]string, 0, 8),
	}
	rd.onField = rd.appendField
	rd.onRow = rd.appendRow
	return rd
}

// Parser returns the parser the Reader feeds.
func (r *Reader) Parser() *Parser {
	return r.parser
}

// Offset returns the number of input bytes handed to the parser so far.
func (r *Reader) Offset() int {
	return r.offset
}

// Read returns the next record. Fields are copied out of the parser, so the
// slice stays valid. Null fields read as empty strings. io.EOF signals that
// no more records remain; a malformed stream yields a *ParseError whose
// Offset counts from the start of the stream.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil {
		return nil, io.EOF
	}

	for len(r.pending) == 0 {
		if r.err != nil {
			return nil, r.err
		}
		r.fill()
	}

	record := r.pending[0]
	r.pending[0] = nil
	r.pending = r.pending[1:]
	return r.checkWidth(record)
}

// ReadAll exhausts the reader, repeatedly calling Read to collect records until io.EOF
// and returning the accumulated records slice plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// fill reads one chunk and parses it, queueing finished records.
func (r *Reader) fill() {
	size := r.ChunkSize
	if size <= 0 {
		size = defaultBufferSize
	}
	if len(r.buf) != size {
		r.buf = make([]byte, size)
	}

	n, err := r.src.Read(r.buf)
	if n > 0 {
		consumed, perr := r.parser.Parse(r.buf[:n], r.onField, r.onRow)
		if perr != nil {
			r.err = r.locate(perr, consumed)
			return
		}
		r.offset += n
	}

	switch {
	case errors.Is(err, io.EOF):
		if ferr := r.parser.Finish(r.onField, r.onRow); ferr != nil {
			r.err = r.locate(ferr, 0)
			return
		}
		r.err = io.EOF
	case err != nil:
		r.err = err
	}
}

func (r *Reader) appendField(field []byte) {
	r.record = append(r.record, string(field))
}

func (r *Reader) appendRow(int) {
	record := r.record
	if record == nil {
		record = []string{}
	}
	r.pending = append(r.pending, record)
	r.record = nil
}

// locate rebases a parse error offset onto the whole stream.
func (r *Reader) locate(err error, consumed int) error {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return err
	}
	return &ParseError{Offset: r.offset + consumed, Err: perr.Err}
}

func (r *Reader) checkWidth(record []string) ([]string, error) {
	switch {
	case r.FieldsPerRecord < 0:
		return record, nil
	case r.FieldsPerRecord == 0:
		r.FieldsPerRecord = len(record)
		return record, nil
	case len(record) != r.FieldsPerRecord:
		return record, ErrFieldCount
	}
	return record, nil
}
