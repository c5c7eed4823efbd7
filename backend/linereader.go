package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader only ever hands out whole newline-terminated lines. A live
// stream may stop mid-row; the partial row is held back until the rest of it
// arrives so the CSV parser never sees half a record. Hitting the end of the
// underlying reader mid-line yields io.EOF, and reading may be retried once
// more data has been written.
type lineReader struct {
	r *bufio.Reader
	// partial is the start of a line whose newline has not arrived.
	partial []byte
	// ready holds complete lines not yet returned to the caller.
	ready []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, err
		}
		l.ready, l.partial = l.partial, nil
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}

// Flush returns everything buffered but not yet read, including a final line
// with no newline, and empties the buffers. Use it once the underlying reader
// has truly ended.
func (l *lineReader) Flush() []byte {
	out := append(l.ready, l.partial...)
	l.ready, l.partial = nil, nil
	return out
}
