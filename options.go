package csvpush

import (
	"fmt"
	"strings"
)

// Option is a set of parser behaviour flags combined with bitwise OR.
type Option uint8

const (
	// Strict rejects a bare quote inside an unquoted field and anything but
	// spaces, a delimiter or a terminator after a closing quote.
	Strict Option = 1 << iota
	// ReportAllTerminators reports a row for every terminator byte, including
	// the ones that would otherwise be absorbed at the start of a row.
	ReportAllTerminators
	// StrictOnFinish makes Finish fail when a quoted field was never closed.
	StrictOnFinish
	// AppendTerminatorByte stores a 0 byte right after every delivered field.
	AppendTerminatorByte
	// EmptyFieldIsNull delivers unquoted empty fields as nil.
	EmptyFieldIsNull

	allOptions = Strict | ReportAllTerminators | StrictOnFinish | AppendTerminatorByte | EmptyFieldIsNull
)

var optionNames = []struct {
	opt  Option
	name string
}{
	{Strict, "Strict"},
	{ReportAllTerminators, "ReportAllTerminators"},
	{StrictOnFinish, "StrictOnFinish"},
	{AppendTerminatorByte, "AppendTerminatorByte"},
	{EmptyFieldIsNull, "EmptyFieldIsNull"},
}

// Has reports whether every flag in o2 is set in o.
func (o Option) Has(o2 Option) bool {
	return o&o2 == o2
}

func (o Option) String() string {
	if o == 0 {
		return "0"
	}
	var parts []string
	for _, n := range optionNames {
		if o&n.opt != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := o &^ allOptions; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

func (o Option) validate() error {
	if rest := o &^ allOptions; rest != 0 {
		return fmt.Errorf("%w: unknown option bits 0x%02x", ErrInvalidConfig, uint8(rest))
	}
	return nil
}

// Common control bytes.
const (
	Tab   byte = 0x09
	LF    byte = 0x0a
	CR    byte = 0x0d
	Space byte = 0x20
	Comma byte = 0x2c
	Quote byte = 0x22
)

// DefaultIsSpace classifies space and tab as blank.
func DefaultIsSpace(c byte) bool {
	return c == Space || c == Tab
}

// DefaultIsTerm classifies CR and LF as row terminators.
func DefaultIsTerm(c byte) bool {
	return c == CR || c == LF
}
