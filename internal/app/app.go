// Package app provides the main emulation loop that ties the VM core to
// its window, audio and input collaborators.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/chip8go/internal/audio"
	"github.com/retroenv/chip8go/internal/chip8"
	"github.com/retroenv/chip8go/internal/disasm"
	"github.com/retroenv/chip8go/internal/gui"
	"github.com/retroenv/chip8go/internal/loader"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const timerHz = 60 // delay and sound timer rate

// Emulator drives a VM with its presentation and audio output.
type Emulator struct {
	logger *log.Logger
	opts   options.Program

	vm     *chip8.VM
	window *gui.Window
	beeper *audio.Beeper
}

// Run loads the ROM file from the program options and runs it until the
// window is closed or the context gets canceled. In disassembly mode the
// listing is printed to stdout instead.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		return disasm.Listing(os.Stdout, rom)
	}

	vm := chip8.New(chip8.Options{Quirks: opts.Quirks})
	if err := vm.LoadROM(rom); err != nil {
		return fmt.Errorf("loading ROM into VM: %w", err)
	}

	logger.Info("Starting emulation",
		log.String("file", opts.Input),
		log.Int("bytes", len(rom)),
		log.Int("hz", opts.ClockHz),
	)

	window, err := gui.New("chip8go - "+opts.Input, opts.Scale)
	if err != nil {
		return fmt.Errorf("opening window: %w", err)
	}
	defer window.Close()

	emu := &Emulator{
		logger: logger,
		opts:   opts,
		vm:     vm,
		window: window,
	}

	if !opts.NoAudio {
		beeper, err := audio.New()
		if err != nil {
			// audio is optional, emulation continues silently
			logger.Warn("Audio unavailable", log.Err(err))
		} else {
			defer func() {
				if err := beeper.Close(); err != nil {
					logger.Error("Closing audio", log.Err(err))
				}
			}()
			emu.beeper = beeper
		}
	}

	return emu.loop(ctx)
}

// loop runs the two independent clocks of the system: instruction cycles
// at the configured rate and timer ticks at 60 Hz. Both use absolute time
// accumulators so a slow frame is caught up instead of slowing emulation.
func (e *Emulator) loop(ctx context.Context) error {
	cpuInterval := time.Second / time.Duration(e.opts.ClockHz)
	timerInterval := time.Second / timerHz

	now := time.Now()
	lastCycle := now
	lastTick := now

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.window.PollEvents() {
			return nil
		}
		e.vm.SetKeys(e.window.Keys())

		now = time.Now()
		for now.Sub(lastCycle) >= cpuInterval {
			if err := e.step(); err != nil {
				return err
			}
			lastCycle = lastCycle.Add(cpuInterval)
		}
		for now.Sub(lastTick) >= timerInterval {
			e.vm.TickTimers()
			lastTick = lastTick.Add(timerInterval)
		}

		if e.beeper != nil {
			e.beeper.SetActive(e.vm.SoundActive())
		}
		if err := e.window.Render(e.vm.Display()); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
	}
}

// step executes a single instruction cycle, optionally tracing it.
func (e *Emulator) step() error {
	if e.opts.Trace && e.vm.Status() == chip8.StatusRunning {
		if opcode, err := e.vm.OpcodeAt(e.vm.PC()); err == nil {
			e.logger.Debug("Executing",
				log.String("pc", fmt.Sprintf("%04X", e.vm.PC())),
				log.String("instruction", disasm.Format(opcode)),
			)
		}
	}

	if err := e.vm.Step(); err != nil {
		return fmt.Errorf("executing instruction: %w", err)
	}
	return nil
}
