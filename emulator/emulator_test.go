package emulator

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrhampson/lc3/device"
	"github.com/mrhampson/lc3/machine"
)

// makeImage assembles a binary image: a big-endian origin word
// followed by the program words.
func makeImage(origin machine.Word, words ...machine.Word) []byte {
	image := make([]byte, 2*(len(words)+1))
	binary.BigEndian.PutUint16(image, uint16(origin))
	for n, w := range words {
		binary.BigEndian.PutUint16(image[2*(n+1):], uint16(w))
	}

	return image
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.Equal(machine.STATUS_RUNNING, emu.Status)
}

func TestEmulator_LoadImageHalt(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu := NewEmulator()
	emu.Display.Output = out

	image := makeImage(0x3000, machine.Word(machine.MakeTrap(machine.TRAP_HALT)))
	assert.NoError(emu.LoadImage(bytes.NewReader(image)))
	assert.Equal(machine.Word(0x3000), emu.PC)

	assert.NoError(emu.Run())
	assert.Equal(machine.STATUS_HALTED, emu.Status)
	assert.Equal(1, emu.Executed)
	assert.Equal("HALT\n", out.String())
}

func TestEmulator_LoadImageOrigin(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	image := makeImage(0x4321, 0x1234, 0xBEEF)
	assert.NoError(emu.LoadImage(bytes.NewReader(image)))

	// The start address is fixed; only the payload follows the origin.
	assert.Equal(machine.USER_SPACE_START, emu.PC)
	assert.Equal(machine.Word(0x1234), emu.Mem.Read(0x4321))
	assert.Equal(machine.Word(0xBEEF), emu.Mem.Read(0x4322))
}

func TestEmulator_LoadImageErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		image []byte
		want  error
	}){
		{"empty", nil, ErrImageShort},
		{"origin_only", []byte{0x30, 0x00}, ErrImageShort},
		{"odd_length", []byte{0x30, 0x00, 0xF0, 0x25, 0x00}, ErrImageTruncated},
		{"into_devices", makeImage(machine.MMIO_START-1, 0x0000, 0x0000), ErrImageLarge},
	}

	for _, entry := range table {
		emu := NewEmulator()
		err := emu.LoadImage(bytes.NewReader(entry.image))
		assert.ErrorIs(err, entry.want, entry.name)
	}
}

func TestEmulator_RunBudget(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.MaxInstructions = 10

	// A branch-to-self never leaves the running state on its own.
	loop := machine.MakeBr(machine.FLAG_POS|machine.FLAG_ZRO|machine.FLAG_NEG, -1)
	image := makeImage(0x3000, machine.Word(loop))
	assert.NoError(emu.LoadImage(bytes.NewReader(image)))

	err := emu.Run()
	assert.ErrorIs(err, ErrBudget)
	assert.Equal(10, emu.Executed)
	assert.Equal(machine.STATUS_RUNNING, emu.Status)
}

func TestEmulator_RunFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	image := makeImage(0x3000, 0xD000) // RES
	assert.NoError(emu.LoadImage(bytes.NewReader(image)))

	err := emu.Run()
	assert.ErrorIs(err, machine.ErrReserved)
	assert.Equal(machine.STATUS_FAULTED, emu.Status)

	var rerr *ErrRuntime
	assert.ErrorAs(err, &rerr)
	assert.Equal(machine.Word(0x3000), rerr.PC)
	assert.Contains(err.Error(), "0x3000")
}

func TestEmulator_HelloWorld(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu := NewEmulator()
	emu.Display.Output = out

	words := []machine.Word{
		machine.Word(machine.MakeLea(machine.R0, 2)),     // 0x3000: r0 = 0x3003
		machine.Word(machine.MakeTrap(machine.TRAP_PUTS)), // 0x3001
		machine.Word(machine.MakeTrap(machine.TRAP_HALT)), // 0x3002
	}
	for _, ch := range "Hello, world!" {
		words = append(words, machine.Word(ch))
	}
	words = append(words, 0)

	assert.NoError(emu.LoadImage(bytes.NewReader(makeImage(0x3000, words...))))
	assert.NoError(emu.Run())

	assert.Equal("Hello, world!HALT\n", out.String())
	assert.Equal(3, emu.Executed)
}

func TestEmulator_Echo(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu := NewEmulator()
	emu.Keyboard = &device.ReaderKeyboard{Input: strings.NewReader("q")}
	emu.Display.Output = out

	image := makeImage(0x3000,
		machine.Word(machine.MakeTrap(machine.TRAP_GETC)),
		machine.Word(machine.MakeTrap(machine.TRAP_OUT)),
		machine.Word(machine.MakeTrap(machine.TRAP_HALT)),
	)
	assert.NoError(emu.LoadImage(bytes.NewReader(image)))
	assert.NoError(emu.Run())

	assert.Equal("qHALT\n", out.String())
}

func TestEmulator_KeyboardPolling(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu := NewEmulator()
	emu.Keyboard = &device.Queue{Data: []byte("Z")}
	emu.Display.Output = out

	// Spin on the keyboard status register, then read the data
	// register and echo it.
	image := makeImage(0x3000,
		machine.Word(machine.MakeLdi(machine.R1, 4)),                   // 0x3000: r1 = [KBSR]
		machine.Word(machine.MakeBr(machine.FLAG_ZRO|machine.FLAG_POS, -2)), // 0x3001: not ready, spin
		machine.Word(machine.MakeLdi(machine.R0, 3)),                   // 0x3002: r0 = [KBDR]
		machine.Word(machine.MakeTrap(machine.TRAP_OUT)),               // 0x3003
		machine.Word(machine.MakeTrap(machine.TRAP_HALT)),              // 0x3004
		machine.KBSR, // 0x3005
		machine.KBDR, // 0x3006
	)
	assert.NoError(emu.LoadImage(bytes.NewReader(image)))
	assert.NoError(emu.Run())

	assert.Equal("ZHALT\n", out.String())
	assert.Equal(machine.KBSR_READY, emu.Reg[machine.R1])
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Display.Output = &bytes.Buffer{}

	image := makeImage(0x3000, machine.Word(machine.MakeTrap(machine.TRAP_HALT)))
	assert.NoError(emu.LoadImage(bytes.NewReader(image)))
	assert.NoError(emu.Run())
	assert.Equal(1, emu.Executed)

	emu.Reset()
	assert.Equal(0, emu.Executed)
	assert.Equal(machine.STATUS_RUNNING, emu.Status)
	assert.Equal(machine.Word(0), emu.Mem.Read(0x3000))
}

func TestEmulator_State(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	state := map[string]string{}
	for name, value := range emu.State() {
		state[name] = value
	}

	assert.Equal("0x3000", state["pc"])
	assert.Equal("ZRO", state["cond"])
	assert.Equal("running", state["status"])
	assert.Equal("0", state["ticks"])

	text := emu.String()
	assert.Contains(text, "pc: 0x3000")
	assert.Contains(text, "ticks: 0")
}
