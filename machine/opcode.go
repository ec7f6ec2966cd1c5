package machine

import (
	"fmt"
)

// Opcode is the operation selector in the top 4 bits of an instruction.
type Opcode int

const (
	OP_BR   = Opcode(0)  // Conditional branch.
	OP_ADD  = Opcode(1)  // Add register or immediate.
	OP_LD   = Opcode(2)  // Load PC-relative.
	OP_ST   = Opcode(3)  // Store PC-relative.
	OP_JSR  = Opcode(4)  // Jump to subroutine (JSR/JSRR).
	OP_AND  = Opcode(5)  // And register or immediate.
	OP_LDR  = Opcode(6)  // Load base+offset.
	OP_STR  = Opcode(7)  // Store base+offset.
	OP_RTI  = Opcode(8)  // Return from interrupt; faults the machine.
	OP_NOT  = Opcode(9)  // Bitwise complement.
	OP_LDI  = Opcode(10) // Load indirect.
	OP_STI  = Opcode(11) // Store indirect.
	OP_JMP  = Opcode(12) // Jump register; JMP r7 is RET.
	OP_RES  = Opcode(13) // Reserved; faults the machine.
	OP_LEA  = Opcode(14) // Load effective address.
	OP_TRAP = Opcode(15) // System call.
)

var opcodeNames = [16]string{
	"BR", "ADD", "LD", "ST", "JSR", "AND", "LDR", "STR",
	"RTI", "NOT", "LDI", "STI", "JMP", "RES", "LEA", "TRAP",
}

// String returns the mnemonic for the opcode.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return opcodeNames[op]
}

// Flag is the one-hot condition register state.
type Flag Word

const (
	FLAG_POS = Flag(1 << 0) // Last register write was positive.
	FLAG_ZRO = Flag(1 << 1) // Last register write was zero.
	FLAG_NEG = Flag(1 << 2) // Last register write was negative.
)

// String returns the flag name, or the raw bits for a non one-hot value.
func (fl Flag) String() string {
	switch fl {
	case FLAG_POS:
		return "POS"
	case FLAG_ZRO:
		return "ZRO"
	case FLAG_NEG:
		return "NEG"
	}
	return fmt.Sprintf("cond(%03b)", Word(fl))
}

// TrapVector identifies a system call invoked via the TRAP instruction.
type TrapVector Word

const (
	TRAP_GETC  = TrapVector(0x20) // Read a character into r0, no echo.
	TRAP_OUT   = TrapVector(0x21) // Write the character in r0.
	TRAP_PUTS  = TrapVector(0x22) // Write a word-per-character string at r0.
	TRAP_IN    = TrapVector(0x23) // Read a character into r0.
	TRAP_PUTSP = TrapVector(0x24) // Write a packed two-character-per-word string at r0.
	TRAP_HALT  = TrapVector(0x25) // Stop the machine.
)

// String returns the trap name.
func (tv TrapVector) String() string {
	switch tv {
	case TRAP_GETC:
		return "GETC"
	case TRAP_OUT:
		return "OUT"
	case TRAP_PUTS:
		return "PUTS"
	case TRAP_IN:
		return "IN"
	case TRAP_PUTSP:
		return "PUTSP"
	case TRAP_HALT:
		return "HALT"
	}
	return fmt.Sprintf("trap(0x%02x)", Word(tv))
}

// Status is the execution state of the machine.
type Status int

const (
	STATUS_RUNNING = Status(0) // Executing instructions.
	STATUS_HALTED  = Status(1) // Stopped by the HALT trap.
	STATUS_FAULTED = Status(2) // Stopped by a fault; terminal.
)

// String returns the status name.
func (st Status) String() string {
	switch st {
	case STATUS_RUNNING:
		return "running"
	case STATUS_HALTED:
		return "halted"
	case STATUS_FAULTED:
		return "faulted"
	}
	return fmt.Sprintf("status(%d)", int(st))
}

// Instruction is a single 16-bit instruction word. Operand fields are
// extracted per fetch; no decoded form is kept.
type Instruction Word

// Op returns the opcode in the top 4 bits.
func (inst Instruction) Op() Opcode {
	return Opcode(inst >> 12)
}

// DR returns the destination register index in bits 11-9.
func (inst Instruction) DR() int {
	return int(inst>>9) & 0x7
}

// SR returns the source register index of a store, in bits 11-9.
func (inst Instruction) SR() int {
	return int(inst>>9) & 0x7
}

// SR1 returns the first source register index in bits 8-6.
func (inst Instruction) SR1() int {
	return int(inst>>6) & 0x7
}

// SR2 returns the second source register index in bits 2-0.
func (inst Instruction) SR2() int {
	return int(inst) & 0x7
}

// BaseR returns the base register index in bits 8-6.
func (inst Instruction) BaseR() int {
	return int(inst>>6) & 0x7
}

// ImmBit reports whether bit 5 selects immediate mode for ADD/AND.
func (inst Instruction) ImmBit() bool {
	return inst&(1<<5) != 0
}

// LongBit reports whether bit 11 selects the PC-relative JSR form.
func (inst Instruction) LongBit() bool {
	return inst&(1<<11) != 0
}

// Imm5 returns the raw 5-bit immediate field.
func (inst Instruction) Imm5() Word {
	return Word(inst) & 0x1F
}

// Offset6 returns the raw 6-bit base offset field.
func (inst Instruction) Offset6() Word {
	return Word(inst) & 0x3F
}

// PCOffset9 returns the raw 9-bit PC-relative offset field.
func (inst Instruction) PCOffset9() Word {
	return Word(inst) & 0x1FF
}

// PCOffset11 returns the raw 11-bit PC-relative offset field.
func (inst Instruction) PCOffset11() Word {
	return Word(inst) & 0x7FF
}

// CondMask returns the branch condition mask in bits 11-9.
func (inst Instruction) CondMask() Flag {
	return Flag(inst>>9) & 0x7
}

// Trap returns the trap vector in the low byte.
func (inst Instruction) Trap() TrapVector {
	return TrapVector(inst & 0xFF)
}

// String returns the opcode mnemonic and the raw instruction word.
func (inst Instruction) String() string {
	if inst.Op() == OP_TRAP {
		return fmt.Sprintf("TRAP %v 0x%04x", inst.Trap(), Word(inst))
	}
	return fmt.Sprintf("%v 0x%04x", inst.Op(), Word(inst))
}

// makeOp builds an instruction from an opcode and its operand bits.
func makeOp(op Opcode, bits Word) Instruction {
	return Instruction(Word(op)<<12 | bits)
}

// MakeAdd encodes ADD dr, sr1, sr2.
func MakeAdd(dr, sr1, sr2 int) Instruction {
	return makeOp(OP_ADD, Word(dr&7)<<9|Word(sr1&7)<<6|Word(sr2&7))
}

// MakeAddImm encodes ADD dr, sr1, #imm with a 5-bit immediate.
func MakeAddImm(dr, sr1, imm int) Instruction {
	return makeOp(OP_ADD, Word(dr&7)<<9|Word(sr1&7)<<6|1<<5|Word(imm&0x1F))
}

// MakeAnd encodes AND dr, sr1, sr2.
func MakeAnd(dr, sr1, sr2 int) Instruction {
	return makeOp(OP_AND, Word(dr&7)<<9|Word(sr1&7)<<6|Word(sr2&7))
}

// MakeAndImm encodes AND dr, sr1, #imm with a 5-bit immediate.
func MakeAndImm(dr, sr1, imm int) Instruction {
	return makeOp(OP_AND, Word(dr&7)<<9|Word(sr1&7)<<6|1<<5|Word(imm&0x1F))
}

// MakeNot encodes NOT dr, sr.
func MakeNot(dr, sr int) Instruction {
	return makeOp(OP_NOT, Word(dr&7)<<9|Word(sr&7)<<6|0x3F)
}

// MakeBr encodes BR with a condition mask and a 9-bit PC offset.
func MakeBr(mask Flag, offset int) Instruction {
	return makeOp(OP_BR, Word(mask&7)<<9|Word(offset&0x1FF))
}

// MakeJmp encodes JMP base.
func MakeJmp(base int) Instruction {
	return makeOp(OP_JMP, Word(base&7)<<6)
}

// MakeRet encodes RET, which is JMP r7.
func MakeRet() Instruction {
	return MakeJmp(R7)
}

// MakeJsr encodes the PC-relative JSR with an 11-bit offset.
func MakeJsr(offset int) Instruction {
	return makeOp(OP_JSR, 1<<11|Word(offset&0x7FF))
}

// MakeJsrr encodes the register form JSRR base.
func MakeJsrr(base int) Instruction {
	return makeOp(OP_JSR, Word(base&7)<<6)
}

// MakeLd encodes LD dr with a 9-bit PC offset.
func MakeLd(dr, offset int) Instruction {
	return makeOp(OP_LD, Word(dr&7)<<9|Word(offset&0x1FF))
}

// MakeLdi encodes LDI dr with a 9-bit PC offset.
func MakeLdi(dr, offset int) Instruction {
	return makeOp(OP_LDI, Word(dr&7)<<9|Word(offset&0x1FF))
}

// MakeLdr encodes LDR dr, base with a 6-bit offset.
func MakeLdr(dr, base, offset int) Instruction {
	return makeOp(OP_LDR, Word(dr&7)<<9|Word(base&7)<<6|Word(offset&0x3F))
}

// MakeLea encodes LEA dr with a 9-bit PC offset.
func MakeLea(dr, offset int) Instruction {
	return makeOp(OP_LEA, Word(dr&7)<<9|Word(offset&0x1FF))
}

// MakeSt encodes ST sr with a 9-bit PC offset.
func MakeSt(sr, offset int) Instruction {
	return makeOp(OP_ST, Word(sr&7)<<9|Word(offset&0x1FF))
}

// MakeSti encodes STI sr with a 9-bit PC offset.
func MakeSti(sr, offset int) Instruction {
	return makeOp(OP_STI, Word(sr&7)<<9|Word(offset&0x1FF))
}

// MakeStr encodes STR sr, base with a 6-bit offset.
func MakeStr(sr, base, offset int) Instruction {
	return makeOp(OP_STR, Word(sr&7)<<9|Word(base&7)<<6|Word(offset&0x3F))
}

// MakeTrap encodes TRAP with the given vector.
func MakeTrap(vector TrapVector) Instruction {
	return makeOp(OP_TRAP, Word(vector)&0xFF)
}
