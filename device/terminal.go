package device

import (
	"os"

	"golang.org/x/term"
)

// Terminal is a live keyboard reading raw, unechoed keystrokes from a
// terminal. Poll blocks until a key is pressed, so programs spinning on
// the keyboard status register simply wait for the next keystroke.
type Terminal struct {
	ReaderKeyboard

	fd  int
	old *term.State
}

var _ Keyboard = (*Terminal)(nil)

// OpenTerminal puts the input file (usually os.Stdin) into raw mode and
// returns a Terminal keyboard for it. Close must be called to restore
// the previous terminal state.
func OpenTerminal(input *os.File) (t *Terminal, err error) {
	fd := int(input.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return
	}

	t = &Terminal{
		ReaderKeyboard: ReaderKeyboard{Input: input},
		fd:             fd,
		old:            old,
	}

	return
}

// Rewind is not possible on a live terminal.
func (t *Terminal) Rewind() {
}

// Close restores the terminal to its pre-raw state.
func (t *Terminal) Close() (err error) {
	if t.old == nil {
		return
	}

	err = term.Restore(t.fd, t.old)
	t.old = nil
	return
}
