// # csvpush: An Incremental Push Parser for CSV-Family Text
//
// csvpush parses delimiter separated, quote escaped text that arrives in
// chunks of any size. The caller pushes bytes with Parser.Parse and receives
// every completed field and row through callbacks while Parse runs; parse
// state survives chunk boundaries, so a field may span any number of calls
// and nothing beyond the field currently being read is ever buffered.
//
// # Features
//
// - Push API (Parser.Parse, Parser.Finish) with zero-copy field delivery.
// - Configurable delimiter, quote, blank and terminator classifiers, buffer block size and field ceiling.
// - Strict and lenient policies, strict end-of-input checking, null fields and terminator bytes via Option flags.
// - Always-quoting writers: Write/Write2 for caller buffers with a size query mode, AppendQuoted, WriteField and a record Writer.
// - Reader, a pull adapter that feeds an io.Reader through a Parser and returns whole records.
// - Structured errors: ParseError with the failing byte offset, ErrNoMemory, ErrFieldTooLarge, ErrInvalidConfig.
//
// # Borrowed fields
//
// The slice handed to a FieldFunc points into the parser's buffer and is
// overwritten by the next byte the parser processes. Copy it before the
// callback returns if it is needed later.
package csvpush
