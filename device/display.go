package device

import (
	"io"
)

// Display is the output sink for characters and strings produced by
// the machine. A Display with a nil Output discards everything.
type Display struct {
	Output io.Writer
}

// WriteChar emits a single character to the output.
func (d *Display) WriteChar(ch byte) (err error) {
	if d.Output == nil {
		return
	}

	_, err = d.Output.Write([]byte{ch})
	return
}

// WriteString emits an assembled string to the output.
func (d *Display) WriteString(s string) (err error) {
	if d.Output == nil {
		return
	}

	_, err = io.WriteString(d.Output, s)
	return
}
