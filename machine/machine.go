package machine

import (
	"errors"
	"fmt"
	"iter"
	"log"

	"github.com/mrhampson/lc3/device"
)

// Keyboard is a machine input source.
type Keyboard device.Keyboard

// General purpose register indices.
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7 // Subroutine link register.
)

// Machine is one complete LC-3 machine instance: memory, registers,
// condition flag, and the attached I/O collaborators. Instances are
// independent; many machines may run in one process.
type Machine struct {
	Verbose bool // Set to enable verbose instruction tracing.

	Mem  Memory  // Flat word-addressed memory.
	Reg  [8]Word // General purpose registers r0-r7.
	PC   Word    // Program counter; next instruction address.
	Cond Flag    // One-hot condition register.

	Status Status // Execution state.

	Keyboard Keyboard       // Input source; nil means never ready.
	Display  device.Display // Output sink.
}

// New creates a machine reset to its initial state.
func New() (m *Machine) {
	m = &Machine{}
	m.Reset()

	return
}

// Reset the machine state.
// - Clears memory, registers, and the program counter origin.
// - Sets the ZRO flag and the running status.
// - Rewinds the keyboard.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("machine: reset")
	}

	m.Mem.Clear()
	clear(m.Reg[:])
	m.PC = USER_SPACE_START
	m.Cond = FLAG_ZRO
	m.Status = STATUS_RUNNING

	if m.Keyboard != nil {
		m.Keyboard.Rewind()
	}
}

// Load copies an image payload into memory beginning at origin.
func (m *Machine) Load(origin Word, words []Word) {
	for n, value := range words {
		m.Mem.Write(origin+Word(n), value)
	}
}

// read is the generic memory read path. Reading the keyboard status
// register refreshes both keyboard registers from the input source,
// consuming a character when one is available.
func (m *Machine) read(addr Word) Word {
	if addr == KBSR {
		m.pollKeyboard()
	}

	return m.Mem.Read(addr)
}

// pollKeyboard latches the next input character into KBDR and the ready
// bit into KBSR. Each poll consumes a character even if KBDR is never
// read; programs are expected to read KBDR after seeing the ready bit.
func (m *Machine) pollKeyboard() {
	if m.Keyboard != nil {
		if ch, ok := m.Keyboard.Poll(); ok {
			m.Mem.Write(KBSR, KBSR_READY)
			m.Mem.Write(KBDR, Word(ch))
			return
		}
	}

	m.Mem.Write(KBSR, 0)
}

// Step executes one fetch-decode-execute cycle. A decode fault or
// exhausted input leaves the machine faulted with the program counter
// one past the faulting instruction.
func (m *Machine) Step() (err error) {
	if m.Status != STATUS_RUNNING {
		return ErrNotRunning
	}

	inst := Instruction(m.read(m.PC))
	m.PC++

	err = m.execute(inst)
	if err != nil {
		m.Status = STATUS_FAULTED
	}

	return
}

// Run steps the machine until it leaves the running state.
func (m *Machine) Run() (err error) {
	for m.Status == STATUS_RUNNING {
		err = m.Step()
		if err != nil {
			return
		}
	}

	return
}

// execute dispatches a single fetched instruction.
func (m *Machine) execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(inst), err)
		}
	}()

	if m.Verbose {
		log.Printf("%04x: %v", m.PC-1, inst)
	}

	switch inst.Op() {
	case OP_ADD:
		dr, sr1 := inst.DR(), inst.SR1()
		var operand Word
		if inst.ImmBit() {
			operand = SignExtend(inst.Imm5(), 5)
		} else {
			operand = m.Reg[inst.SR2()]
		}
		m.Reg[dr] = m.Reg[sr1] + operand
		m.updateFlags(dr)

	case OP_AND:
		dr, sr1 := inst.DR(), inst.SR1()
		var operand Word
		if inst.ImmBit() {
			operand = SignExtend(inst.Imm5(), 5)
		} else {
			operand = m.Reg[inst.SR2()]
		}
		m.Reg[dr] = m.Reg[sr1] & operand
		m.updateFlags(dr)

	case OP_NOT:
		dr := inst.DR()
		m.Reg[dr] = ^m.Reg[inst.SR1()]
		m.updateFlags(dr)

	case OP_BR:
		// Offset is relative to the already-incremented PC.
		if inst.CondMask()&m.Cond != 0 {
			m.PC += SignExtend(inst.PCOffset9(), 9)
		}

	case OP_JMP:
		m.PC = m.Reg[inst.BaseR()]

	case OP_JSR:
		// The link is saved before the target is computed, so JSRR r7
		// jumps to the return address.
		m.Reg[R7] = m.PC
		if inst.LongBit() {
			m.PC += SignExtend(inst.PCOffset11(), 11)
		} else {
			m.PC = m.Reg[inst.BaseR()]
		}

	case OP_LD:
		dr := inst.DR()
		m.Reg[dr] = m.read(m.PC + SignExtend(inst.PCOffset9(), 9))
		m.updateFlags(dr)

	case OP_LDI:
		dr := inst.DR()
		m.Reg[dr] = m.read(m.read(m.PC + SignExtend(inst.PCOffset9(), 9)))
		m.updateFlags(dr)

	case OP_LDR:
		dr := inst.DR()
		m.Reg[dr] = m.read(m.Reg[inst.BaseR()] + SignExtend(inst.Offset6(), 6))
		m.updateFlags(dr)

	case OP_LEA:
		dr := inst.DR()
		m.Reg[dr] = m.PC + SignExtend(inst.PCOffset9(), 9)
		m.updateFlags(dr)

	case OP_ST:
		m.Mem.Write(m.PC+SignExtend(inst.PCOffset9(), 9), m.Reg[inst.SR()])

	case OP_STI:
		m.Mem.Write(m.read(m.PC+SignExtend(inst.PCOffset9(), 9)), m.Reg[inst.SR()])

	case OP_STR:
		m.Mem.Write(m.Reg[inst.BaseR()]+SignExtend(inst.Offset6(), 6), m.Reg[inst.SR()])

	case OP_TRAP:
		err = m.trap(inst.Trap())

	case OP_RTI, OP_RES:
		err = ErrReserved

	default:
		err = ErrReserved
	}

	return
}

// updateFlags recomputes the condition register from register r.
func (m *Machine) updateFlags(r int) {
	switch {
	case m.Reg[r] == 0:
		m.Cond = FLAG_ZRO
	case m.Reg[r]>>15 != 0:
		m.Cond = FLAG_NEG
	default:
		m.Cond = FLAG_POS
	}
}

// Registers returns a name/value iterator over the register file and
// execution state, in display order.
func (m *Machine) Registers() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for n, value := range m.Reg {
			if !yield(fmt.Sprintf("r%d", n), fmt.Sprintf("0x%04x", value)) {
				return
			}
		}
		if !yield("pc", fmt.Sprintf("0x%04x", m.PC)) {
			return
		}
		if !yield("cond", m.Cond.String()) {
			return
		}
		yield("status", m.Status.String())
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	for name, value := range m.Registers() {
		text += fmt.Sprintf("% 6s: %v\n", name, value)
	}

	return
}
