package machine

// Memory layout constants.
const (
	MEMORY_SIZE      = 1 << 16
	USER_SPACE_START = Word(0x3000) // Default program origin.
	MMIO_START       = Word(0xFE00) // Memory mapped device registers.

	KBSR = MMIO_START          // Keyboard status register.
	KBDR = MMIO_START + 0x0002 // Keyboard data register.

	KBSR_READY = Word(0x8000) // Ready bit in KBSR.
)

// Memory is the flat word-addressed store. Addressing wraps with Word
// arithmetic, so every address is valid. Device behavior on the memory
// mapped registers is layered on by the machine's read path, not here.
type Memory struct {
	cells [MEMORY_SIZE]Word
}

// Write stores value at addr unconditionally.
func (mem *Memory) Write(addr, value Word) {
	mem.cells[addr] = value
}

// Read returns the word stored at addr.
func (mem *Memory) Read(addr Word) Word {
	return mem.cells[addr]
}

// Clear zeroes all of memory.
func (mem *Memory) Clear() {
	clear(mem.cells[:])
}
