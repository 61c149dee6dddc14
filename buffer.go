package csvpush

import (
	"fmt"
	"math"
)

const (
	defaultBlockSize = 128
	maxBlockSize     = 1 << 30
)

// defaultAllocator turns an allocation the runtime refuses into an error
// instead of a panic.
func defaultAllocator(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return make([]byte, size), nil
}

// BlockSize returns the increment the accumulation buffer grows by.
func (p *Parser) BlockSize() int {
	if p.blockSize <= 0 {
		return defaultBlockSize
	}
	return p.blockSize
}

// SetBlockSize sets the buffer growth increment. Sizes below one or above
// 1 GiB are rejected immediately rather than on the next growth.
func (p *Parser) SetBlockSize(size int) error {
	if size <= 0 || size > maxBlockSize {
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, size)
	}
	p.blockSize = size
	return nil
}

// BufferSize returns the current capacity of the accumulation buffer.
func (p *Parser) BufferSize() int {
	return len(p.buf)
}

// MaxFieldSize returns the field ceiling, zero meaning none.
func (p *Parser) MaxFieldSize() int {
	return p.maxField
}

// SetMaxFieldSize caps the length of a delivered field. Blanks that may still
// be trimmed and a closing quote not yet confirmed are not counted.
// Zero removes the cap.
func (p *Parser) SetMaxFieldSize(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: max field size %d", ErrInvalidConfig, size)
	}
	p.maxField = size
	return nil
}

// checkFieldSize enforces the field ceiling on the bytes of the open field
// that are certain to be delivered.
func (p *Parser) checkFieldSize() error {
	if p.maxField <= 0 {
		return nil
	}
	held := p.spaces
	if p.state == stateQuoteSeen {
		held++
	}
	if p.n-held > p.maxField {
		return fmt.Errorf("%w: field exceeds %d bytes", ErrFieldTooLarge, p.maxField)
	}
	return nil
}

// push appends c to the field being accumulated, growing the buffer by whole
// blocks when needed. reserve is the number of bytes that must stay free after
// c (one when a terminator byte will be stored behind the field).
func (p *Parser) push(c byte, reserve int) error {
	if p.n > math.MaxInt-1-reserve {
		return fmt.Errorf("%w: field exceeds %d bytes", ErrFieldTooLarge, p.n)
	}
	if p.n+1+reserve > len(p.buf) {
		if err := p.grow(p.n + 1 + reserve); err != nil {
			return err
		}
	}
	p.buf[p.n] = c
	p.n++
	return nil
}

// grow enlarges the buffer to at least need bytes. The buffer never shrinks.
func (p *Parser) grow(need int) error {
	block := p.BlockSize()
	size := len(p.buf)
	for size < need {
		if size > math.MaxInt-block {
			size = math.MaxInt
			break
		}
		size += block
	}

	alloc := p.Allocator
	if alloc == nil {
		alloc = defaultAllocator
	}
	buf, err := alloc(size)
	if err != nil {
		return fmt.Errorf("%w: allocating %d bytes: %v", ErrNoMemory, size, err)
	}
	if len(buf) < size {
		return fmt.Errorf("%w: allocator returned %d bytes, want %d", ErrNoMemory, len(buf), size)
	}
	copy(buf, p.buf[:p.n])
	p.buf = buf[:size]
	return nil
}
