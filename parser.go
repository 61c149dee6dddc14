package csvpush

import "errors"

// EndOfInput is the terminator reported for a row closed by Finish rather
// than by a terminator byte.
const EndOfInput = -1

var errNilParser = errors.New("csvpush: parser is nil")

// FieldFunc receives a completed field. The slice borrows the parser's buffer
// and is only valid until the callback returns; copy it to keep it. A nil
// slice is a null field (see EmptyFieldIsNull), every other field is non-nil.
type FieldFunc func(field []byte)

// RowFunc receives the terminator byte that closed a row, or EndOfInput.
type RowFunc func(term int)

type state uint8

const (
	stateRowStart state = iota
	stateFieldStart
	stateUnquoted
	stateQuoted
	// a quote was seen inside a quoted field and is held in the buffer until
	// the next byte decides whether it closes the field or escapes a quote
	stateQuoteSeen
	stateError
)

// Parser is an incremental CSV parser. Bytes are pushed in with Parse in
// chunks of any size and completed fields and rows are reported through
// callbacks, synchronously, before Parse returns. Finish ends a document.
//
// Exported fields may be changed between calls. Each call reads them once on
// entry, so a change made while a field is open applies to the rest of that
// field from the next call on. A Parser is not safe for concurrent use.
type Parser struct {
	// Delimiter separates fields. Default is ','.
	Delimiter byte
	// Quote opens and closes quoted fields. Default is '"'.
	Quote byte
	// IsSpace classifies blank bytes that are trimmed around fields. Nil uses DefaultIsSpace.
	IsSpace func(c byte) bool
	// IsTerm classifies row terminator bytes. Nil uses DefaultIsTerm.
	IsTerm func(c byte) bool
	// Allocator returns a zeroed slice of at least size bytes for the
	// accumulation buffer. Nil uses make.
	Allocator func(size int) ([]byte, error)

	opts      Option
	blockSize int
	maxField  int

	state  state
	buf    []byte
	n      int
	spaces int
	quoted bool
	err    error
}

// NewParser creates a Parser with the default delimiter and quote and the
// given options.
func NewParser(opts Option) (*Parser, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Parser{
		Delimiter: Comma,
		Quote:     Quote,
		opts:      opts,
		blockSize: defaultBlockSize,
	}, nil
}

// Options returns the active option set.
func (p *Parser) Options() Option {
	return p.opts
}

// SetOptions replaces the option set.
func (p *Parser) SetOptions(opts Option) error {
	if err := opts.validate(); err != nil {
		return err
	}
	p.opts = opts
	return nil
}

// Err returns the error that stopped the parser, if any.
func (p *Parser) Err() error {
	return p.err
}

// config is the per-call snapshot of the exported settings.
type config struct {
	delim   byte
	quote   byte
	opts    Option
	reserve int
	isSpace func(byte) bool
	isTerm  func(byte) bool
}

func (p *Parser) snapshot() config {
	cfg := config{
		delim:   p.Delimiter,
		quote:   p.Quote,
		opts:    p.opts,
		isSpace: p.IsSpace,
		isTerm:  p.IsTerm,
	}
	if cfg.delim == 0 {
		cfg.delim = Comma
	}
	if cfg.quote == 0 {
		cfg.quote = Quote
	}
	if cfg.isSpace == nil {
		cfg.isSpace = DefaultIsSpace
	}
	if cfg.isTerm == nil {
		cfg.isTerm = DefaultIsTerm
	}
	if cfg.opts&AppendTerminatorByte != 0 {
		cfg.reserve = 1
	}
	return cfg
}

// Parse consumes data, invoking onField and onRow for every field and row it
// completes. Either callback may be nil. It returns len(data) on success. On
// failure it returns the number of bytes processed before the offending byte,
// and the parser keeps returning the same error until it is discarded.
func (p *Parser) Parse(data []byte, onField FieldFunc, onRow RowFunc) (int, error) {
	if p == nil {
		return 0, errNilParser
	}
	if p.err != nil {
		return 0, p.err
	}
	if len(data) == 0 {
		return 0, nil
	}

	cfg := p.snapshot()
	if p.buf == nil {
		if err := p.grow(1); err != nil {
			return 0, p.fail(err)
		}
	}

	for pos, c := range data {
		var err error
		switch p.state {
		case stateRowStart, stateFieldStart:
			switch {
			case cfg.isSpace(c) && c != cfg.delim:
				// leading blanks are dropped
			case cfg.isTerm(c):
				if p.state == stateFieldStart {
					if err = p.emitField(&cfg, onField); err == nil {
						p.emitRow(int(c), onRow)
					}
				} else if cfg.opts&ReportAllTerminators != 0 {
					p.emitRow(int(c), onRow)
				}
			case c == cfg.delim:
				err = p.emitField(&cfg, onField)
			case c == cfg.quote:
				p.state = stateQuoted
				p.quoted = true
			default:
				p.state = stateUnquoted
				p.quoted = false
				err = p.push(c, cfg.reserve)
			}

		case stateUnquoted:
			switch {
			case c == cfg.quote:
				if cfg.opts&Strict != 0 {
					return pos, p.fail(&ParseError{Offset: pos, Err: ErrBareQuote})
				}
				err = p.push(c, cfg.reserve)
				p.spaces = 0
			case c == cfg.delim:
				err = p.emitField(&cfg, onField)
			case cfg.isTerm(c):
				if err = p.emitField(&cfg, onField); err == nil {
					p.emitRow(int(c), onRow)
				}
			case cfg.isSpace(c):
				err = p.push(c, cfg.reserve)
				p.spaces++
			default:
				err = p.push(c, cfg.reserve)
				p.spaces = 0
			}

		case stateQuoted:
			err = p.push(c, cfg.reserve)
			if c == cfg.quote {
				p.state = stateQuoteSeen
			}

		case stateQuoteSeen:
			switch {
			case c == cfg.delim:
				p.dropClosingQuote()
				err = p.emitField(&cfg, onField)
			case cfg.isTerm(c):
				p.dropClosingQuote()
				if err = p.emitField(&cfg, onField); err == nil {
					p.emitRow(int(c), onRow)
				}
			case cfg.isSpace(c):
				err = p.push(c, cfg.reserve)
				p.spaces++
			case c == cfg.quote && p.spaces == 0:
				// doubled quote: the one already buffered is the literal
				p.state = stateQuoted
			default:
				if cfg.opts&Strict != 0 {
					return pos, p.fail(&ParseError{Offset: pos, Err: ErrQuoteGarbage})
				}
				err = p.push(c, cfg.reserve)
				p.spaces = 0
				if c != cfg.quote {
					p.state = stateQuoted
				}
			}
		}

		if err == nil {
			err = p.checkFieldSize()
		}
		if err != nil {
			return pos, p.fail(err)
		}
	}
	return len(data), nil
}

// Finish flushes a trailing field and row at end of input and resets the
// parser so it can start a new document with the same settings. Calling it
// again without new input reports nothing.
func (p *Parser) Finish(onField FieldFunc, onRow RowFunc) error {
	if p == nil {
		return errNilParser
	}
	if p.err != nil {
		return p.err
	}

	cfg := p.snapshot()
	if p.state == stateQuoted && cfg.opts&StrictOnFinish != 0 {
		return p.fail(&ParseError{Offset: 0, Err: ErrUnterminatedQuote})
	}

	switch p.state {
	case stateQuoteSeen:
		p.dropClosingQuote()
		fallthrough
	case stateFieldStart, stateUnquoted, stateQuoted:
		if err := p.emitField(&cfg, onField); err != nil {
			return p.fail(err)
		}
		p.emitRow(EndOfInput, onRow)
	}

	p.reset()
	return nil
}

// dropClosingQuote removes the held quote and any blanks after it.
func (p *Parser) dropClosingQuote() {
	p.n -= p.spaces + 1
	p.spaces = 0
}

func (p *Parser) emitField(cfg *config, onField FieldFunc) error {
	if !p.quoted {
		p.n -= p.spaces
	}
	if onField != nil {
		switch {
		case cfg.opts&EmptyFieldIsNull != 0 && !p.quoted && p.n == 0:
			onField(nil)
		case cfg.opts&AppendTerminatorByte != 0:
			if p.n >= len(p.buf) {
				if err := p.grow(p.n + 1); err != nil {
					return err
				}
			}
			p.buf[p.n] = 0
			onField(p.buf[:p.n:p.n+1])
		default:
			onField(p.field())
		}
	}
	p.state = stateFieldStart
	p.n, p.spaces, p.quoted = 0, 0, false
	return nil
}

func (p *Parser) emitRow(term int, onRow RowFunc) {
	if onRow != nil {
		onRow(term)
	}
	p.state = stateRowStart
	p.n, p.spaces, p.quoted = 0, 0, false
}

var emptyField = []byte{}

func (p *Parser) field() []byte {
	if p.buf == nil {
		return emptyField
	}
	return p.buf[:p.n:p.n]
}

func (p *Parser) fail(err error) error {
	p.state = stateError
	p.err = err
	return err
}

func (p *Parser) reset() {
	p.state = stateRowStart
	p.n, p.spaces, p.quoted = 0, 0, false
}
