package emulator

import (
	"errors"

	"github.com/mrhampson/lc3/machine"
	"github.com/mrhampson/lc3/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageShort     = errors.New(f("image too short"))
	ErrImageTruncated = errors.New(f("image truncated mid-word"))
	ErrImageLarge     = errors.New(f("image does not fit below device registers"))

	// Run errors
	ErrBudget = errors.New(f("instruction budget exhausted"))
)

// ErrRuntime indicates the location of a runtime fault.
type ErrRuntime struct {
	PC  machine.Word
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("at 0x%04x: %v", uint16(err.PC), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
