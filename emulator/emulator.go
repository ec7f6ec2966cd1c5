// Package emulator wires a machine to its host: image loading, the
// outer run loop with an optional instruction budget, and the combined
// state dump.
package emulator

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"

	"github.com/mrhampson/lc3/internal"
	"github.com/mrhampson/lc3/machine"
)

// Emulator is a machine plus its host-side policy.
type Emulator struct {
	Verbose bool // If set, enables verbose instruction tracing.
	*machine.Machine

	MaxInstructions int // Instruction budget; 0 is unlimited.
	Executed        int // Instructions dispatched since the last reset.
}

// NewEmulator creates an emulator around a fresh machine.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: machine.New(),
	}

	return
}

// Reset the machine and the execution counter.
func (emu *Emulator) Reset() {
	emu.Machine.Reset()
	emu.Executed = 0
}

// LoadImage reads a machine image: a big-endian origin word followed by
// big-endian program words, copied into memory starting at the origin.
// The program counter stays at the fixed start address; programs whose
// origin differs from it must provide their own entry there.
func (emu *Emulator) LoadImage(r io.Reader) (err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(data) < 4 {
		return ErrImageShort
	}
	if len(data)%2 != 0 {
		return ErrImageTruncated
	}

	origin := machine.Word(binary.BigEndian.Uint16(data[0:2]))

	payload := data[2:]
	words := make([]machine.Word, len(payload)/2)
	for n := range words {
		words[n] = machine.Word(binary.BigEndian.Uint16(payload[2*n:]))
	}

	if int(origin)+len(words) > int(machine.MMIO_START) {
		return ErrImageLarge
	}

	emu.Machine.Load(origin, words)

	return
}

// Run steps the machine to completion, honoring the instruction
// budget. Faults are wrapped with the address of the faulting
// instruction.
func (emu *Emulator) Run() (err error) {
	emu.Machine.Verbose = emu.Verbose

	for emu.Status == machine.STATUS_RUNNING {
		if emu.MaxInstructions > 0 && emu.Executed >= emu.MaxInstructions {
			return ErrBudget
		}

		pc := emu.PC
		err = emu.Step()
		emu.Executed++
		if err != nil {
			return &ErrRuntime{PC: pc, Err: err}
		}
	}

	return
}

// State returns a name/value iterator over the machine registers and
// the emulator's own counters, for the verbose dump.
func (emu *Emulator) State() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Registers(),
		func(yield func(string, string) bool) {
			yield("ticks", fmt.Sprintf("%d", emu.Executed))
		},
	)
}

// String returns the current emulator state as a string.
func (emu *Emulator) String() (text string) {
	for name, value := range emu.State() {
		text += fmt.Sprintf("% 6s: %v\n", name, value)
	}

	return
}
