// Package linereader reads text logs line by line without failing on lines
// that are too long to hold in memory.
package linereader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxLineLength bounds the lines handed to parsers.
const DefaultMaxLineLength = 1024 * 1024

// ErrLineTooLong is returned for a line that exceeded the limit. The line has
// already been consumed; the caller can keep reading.
var ErrLineTooLong = errors.New("line too long")

// Reader returns lines without their "\n" or "\r\n" terminator.
type Reader struct {
	br      *bufio.Reader
	maxLen  int
	lineNo  int
	skipped int
}

// New creates a Reader over rd. A non-positive maxLen uses DefaultMaxLineLength.
func New(rd io.Reader, maxLen int) *Reader {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	return &Reader{
		br:     bufio.NewReaderSize(rd, 64*1024),
		maxLen: maxLen,
	}
}

// Next returns the next line. It returns io.EOF when the input is exhausted
// and ErrLineTooLong (wrapped) for a line that was drained and dropped.
func (r *Reader) Next() (string, error) {
	chunk, isPrefix, err := r.br.ReadLine()
	if err != nil {
		return "", err
	}
	r.lineNo++

	if !isPrefix && len(chunk) <= r.maxLen {
		return string(chunk), nil
	}

	// Drain the continuation chunks of a line longer than the buffer.
	size := len(chunk)
	var buf []byte
	if size <= r.maxLen {
		buf = append(buf, chunk...)
	}

	for isPrefix {
		chunk, isPrefix, err = r.br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		size += len(chunk)
		if size <= r.maxLen {
			buf = append(buf, chunk...)
		}
	}

	if size > r.maxLen {
		r.skipped++
		return "", fmt.Errorf("%w: line %d has %d bytes", ErrLineTooLong, r.lineNo, size)
	}
	return string(buf), nil
}

// LineNo returns the number of the line last returned or skipped.
func (r *Reader) LineNo() int {
	return r.lineNo
}

// Skipped returns how many overlong lines were dropped.
func (r *Reader) Skipped() int {
	return r.skipped
}
