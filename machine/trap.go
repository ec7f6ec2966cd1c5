package machine

import (
	"log"
)

// trap dispatches a TRAP system call by vector.
func (m *Machine) trap(vector TrapVector) (err error) {
	if m.Verbose {
		log.Printf("trap 0x%02x %v", Word(vector), vector)
	}

	switch vector {
	case TRAP_GETC, TRAP_IN:
		// IN differs from GETC only by calling convention, not behavior.
		err = m.getChar()

	case TRAP_OUT:
		err = m.Display.WriteChar(byte(m.Reg[R0]))

	case TRAP_PUTS:
		var out []byte
		out, err = m.readString(func(w Word) []byte {
			return []byte{byte(w)}
		})
		if err != nil {
			return
		}
		err = m.Display.WriteString(string(out))

	case TRAP_PUTSP:
		var out []byte
		out, err = m.readString(func(w Word) []byte {
			// Low byte first; the high byte only when non-zero.
			if hi := byte(w >> 8); hi != 0 {
				return []byte{byte(w), hi}
			}
			return []byte{byte(w)}
		})
		if err != nil {
			return
		}
		err = m.Display.WriteString(string(out))

	case TRAP_HALT:
		err = m.Display.WriteString("HALT\n")
		m.Status = STATUS_HALTED

	default:
		err = ErrTrapVector
	}

	return
}

// getChar consumes one character from the keyboard into the low byte
// of r0. An exhausted input source is a hard failure; the caller is
// responsible for supplying enough input for every blocking read.
func (m *Machine) getChar() (err error) {
	if m.Keyboard == nil {
		return ErrNoInput
	}

	ch, ok := m.Keyboard.Poll()
	if !ok {
		return ErrNoInput
	}

	m.Reg[R0] = Word(ch)
	return
}

// readString assembles one trap's output by reading consecutive words
// starting at r0 until a zero word, expanding each word through split.
// A string without a terminator within the address space is an error.
func (m *Machine) readString(split func(w Word) []byte) (out []byte, err error) {
	addr := m.Reg[R0]
	for range MEMORY_SIZE {
		w := m.read(addr)
		if w == 0 {
			return
		}
		out = append(out, split(w)...)
		addr++
	}

	err = ErrUnterminated
	return
}
