package csvpush

import (
	"bytes"
	"io"
)

// Write quotes src with '"' into dst and returns the length of the complete
// quoted form. Output that does not fit in dst is dropped, so Write(nil, src)
// only computes the size. The field is always quoted, whatever it contains.
func Write(dst, src []byte) int {
	return Write2(dst, src, Quote)
}

// Write2 is Write with an explicit quote byte.
func Write2(dst, src []byte, quote byte) int {
	n := 0
	put := func(c byte) {
		if n < len(dst) {
			dst[n] = c
		}
		n++
	}

	put(quote)
	for _, c := range src {
		if c == quote {
			put(quote)
		}
		put(c)
	}
	put(quote)
	return n
}

// QuotedLen returns the number of bytes Write2 produces for src.
func QuotedLen(src []byte, quote byte) int {
	return len(src) + bytes.Count(src, []byte{quote}) + 2
}

// AppendQuoted appends the quoted form of src to dst and returns the extended slice.
func AppendQuoted(dst, src []byte, quote byte) []byte {
	dst = append(dst, quote)
	for {
		i := bytes.IndexByte(src, quote)
		if i < 0 {
			break
		}
		dst = append(dst, src[:i+1]...)
		dst = append(dst, quote)
		src = src[i+1:]
	}
	dst = append(dst, src...)
	return append(dst, quote)
}

// WriteField writes the '"' quoted form of src to w.
func WriteField(w io.Writer, src []byte) (int, error) {
	return WriteField2(w, src, Quote)
}

// WriteField2 writes the quoted form of src to w using quote.
func WriteField2(w io.Writer, src []byte, quote byte) (int, error) {
	if bw, ok := w.(io.ByteWriter); ok {
		return writeFieldBuffered(bw, w, src, quote)
	}
	return w.Write(AppendQuoted(make([]byte, 0, QuotedLen(src, quote)), src, quote))
}

// writeFieldBuffered avoids the intermediate copy on writers that are already
// buffered, such as *bufio.Writer and *bytes.Buffer.
func writeFieldBuffered(bw io.ByteWriter, w io.Writer, src []byte, quote byte) (int, error) {
	written := 0
	if err := bw.WriteByte(quote); err != nil {
		return written, err
	}
	written++

	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] != quote {
			continue
		}
		n, err := w.Write(src[start : i+1])
		written += n
		if err != nil {
			return written, err
		}
		if err := bw.WriteByte(quote); err != nil {
			return written, err
		}
		written++
		start = i + 1
	}
	if start < len(src) {
		n, err := w.Write(src[start:])
		written += n
		if err != nil {
			return written, err
		}
	}
	if err := bw.WriteByte(quote); err != nil {
		return written, err
	}
	written++
	return written, nil
}
