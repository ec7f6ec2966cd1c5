package device

import (
	"io"
)

// ReaderKeyboard adapts an io.Reader into a Keyboard, delivering one
// byte per Poll. Poll blocks until the reader produces a byte or fails.
type ReaderKeyboard struct {
	Input io.Reader
}

var _ Keyboard = (*ReaderKeyboard)(nil)

// Poll reads a single byte from the input. ok is false at end of input
// or on a read error.
func (rk *ReaderKeyboard) Poll() (ch byte, ok bool) {
	if rk.Input == nil {
		return
	}

	var one [1]byte
	n, err := rk.Input.Read(one[:])
	if n == 0 || err != nil {
		return
	}

	return one[0], true
}

// Rewind seeks back to the start when the reader supports it.
func (rk *ReaderKeyboard) Rewind() {
	if seeker, ok := rk.Input.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}
}
