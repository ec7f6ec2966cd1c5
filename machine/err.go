package machine

import (
	"errors"

	"github.com/mrhampson/lc3/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrNotRunning = errors.New(f("machine not running"))
	ErrNoInput    = errors.New(f("input exhausted"))

	// Instruction faults
	ErrReserved     = errors.New(f("reserved opcode"))
	ErrTrapVector   = errors.New(f("trap vector unknown"))
	ErrUnterminated = errors.New(f("string not terminated"))
)

// ErrInstruction decorates a fault with the instruction that caused it.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("bad instruction %v", Instruction(ei))
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}
