package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mrhampson/lc3/device"
	"github.com/mrhampson/lc3/emulator"
)

type options struct {
	image    string
	input    string
	output   string
	terminal bool
	budget   int
	verbose  bool
}

func main() {
	var opt options

	flag.StringVar(&opt.input, "i", "-", "Keyboard input")
	flag.StringVar(&opt.output, "o", "-", "Display output")
	flag.BoolVar(&opt.terminal, "t", false, "Raw terminal keyboard")
	flag.IntVar(&opt.budget, "n", 0, "Instruction budget (0 = unlimited)")
	flag.BoolVar(&opt.verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: lc3 [options] image", os.Args[0])
	}
	opt.image = flag.Arg(0)

	// Run in a helper so the deferred terminal restore and file closes
	// happen before the process exits.
	err := run(&opt)
	if err != nil {
		log.Fatal(err)
	}
}

func run(opt *options) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opt.verbose
	emu.MaxInstructions = opt.budget

	imf, err := os.Open(opt.image)
	if err != nil {
		return
	}
	err = emu.LoadImage(imf)
	imf.Close()
	if err != nil {
		return fmt.Errorf("%v: %w", opt.image, err)
	}

	switch {
	case opt.terminal:
		var term *device.Terminal
		term, err = device.OpenTerminal(os.Stdin)
		if err != nil {
			return
		}
		defer term.Close()
		emu.Keyboard = term
	case opt.input == "-":
		emu.Keyboard = &device.ReaderKeyboard{Input: os.Stdin}
	default:
		var inf *os.File
		inf, err = os.Open(opt.input)
		if err != nil {
			return
		}
		defer inf.Close()
		emu.Keyboard = &device.ReaderKeyboard{Input: inf}
	}

	if opt.output == "-" {
		emu.Display.Output = os.Stdout
	} else {
		var ouf *os.File
		ouf, err = os.Create(opt.output)
		if err != nil {
			return
		}
		defer ouf.Close()
		emu.Display.Output = ouf
	}

	err = emu.Run()
	if err != nil {
		return
	}

	if opt.verbose {
		log.Printf("\n%v", emu)
	}

	return
}
