package csvpush

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError through errors.Is.
	ErrParse = errors.New("csvpush: malformed input")
	// ErrBareQuote is returned in strict mode when a quote appears inside an unquoted field.
	ErrBareQuote = errors.New("csvpush: bare quote in non-quoted field")
	// ErrQuoteGarbage is returned in strict mode when a closing quote is followed by
	// something other than a delimiter, a terminator or spaces.
	ErrQuoteGarbage = errors.New("csvpush: unexpected byte after closing quote")
	// ErrUnterminatedQuote is returned by Finish when StrictOnFinish is set and a quoted field is still open.
	ErrUnterminatedQuote = errors.New("csvpush: unterminated quoted field")
	// ErrNoMemory is returned when the buffer allocator fails.
	ErrNoMemory = errors.New("csvpush: out of memory")
	// ErrFieldTooLarge is returned when a field would outgrow the configured ceiling.
	ErrFieldTooLarge = errors.New("csvpush: field too large")
	// ErrInvalidConfig is returned by setters given a value the parser cannot run with.
	ErrInvalidConfig = errors.New("csvpush: invalid configuration")
	// ErrFieldCount is returned by Reader when a record has an unexpected number of fields.
	ErrFieldCount = errors.New("csvpush: wrong number of fields")
)

// ParseError reports malformed input. Offset counts the bytes of the failing
// Parse call that were processed before the offending byte; Reader rewrites it
// to an absolute stream offset.
type ParseError struct {
	Offset int
	Err    error
}

// Error formats the parse error message with the stored offset and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("csvpush: parse error at byte %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports true for ErrParse so callers can branch on the error kind
// without caring which rule was violated.
func (e *ParseError) Is(target error) bool {
	return e != nil && target == ErrParse
}
