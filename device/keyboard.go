// Package device provides the I/O collaborators for the LC-3 machine.
// It includes keyboard input sources (a pre-supplied Queue, an io.Reader
// adapter, and a raw-mode Terminal) and the Display output sink.
package device

// Keyboard defines the interface for all keyboard input sources.
// Every successful Poll consumes one character; there is no way to
// inspect the next character without consuming it.
type Keyboard interface {
	// Poll returns the next input character, advancing the cursor.
	// ok is false when no character is available.
	Poll() (ch byte, ok bool)
	// Rewind resets the input cursor to its initial state, where the
	// underlying source allows it.
	Rewind()
}

// Queue is a keyboard backed by a pre-supplied character sequence.
// Characters are consumed monotonically forward from Data.
type Queue struct {
	Data []byte // Characters to deliver, in order.

	cursor int
}

var _ Keyboard = (*Queue)(nil)

// Poll returns the character at the cursor and advances it.
func (q *Queue) Poll() (ch byte, ok bool) {
	if q.cursor >= len(q.Data) {
		return
	}

	ch = q.Data[q.cursor]
	q.cursor++
	ok = true
	return
}

// Rewind resets the cursor to the start of the sequence.
func (q *Queue) Rewind() {
	q.cursor = 0
}

// Remaining returns the count of unconsumed characters.
func (q *Queue) Remaining() int {
	return len(q.Data) - q.cursor
}
