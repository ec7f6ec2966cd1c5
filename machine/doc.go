// Package machine implements the LC-3 virtual machine core.
//
// The machine consists of a flat 65536-word memory, eight 16-bit
// general purpose registers (r0-r7), a program counter, and a one-hot
// condition register tracking the sign of the last register write.
// Instructions are fetched from memory, decoded by bit-field extraction,
// and dispatched to one handler per opcode until the program executes
// the HALT trap or a reserved opcode faults the machine.
//
// The keyboard is visible both through the GETC/IN traps and through a
// pair of memory mapped registers that are refreshed whenever the
// status register is read.
package machine
