package machine

// Word is the machine's 16-bit storage and arithmetic unit.
// All arithmetic on it wraps modulo 2^16.
type Word uint16

// SignExtend treats the low bits of v as a bits-wide two's-complement
// field and widens it to 16 bits. SignExtend(0x1F, 5) is 0xFFFF (-1);
// SignExtend(0x0F, 5) is 0x000F.
func SignExtend(v Word, bits uint) Word {
	if (v>>(bits-1))&1 != 0 {
		v |= Word(0xFFFF) << bits
	}
	return v
}
