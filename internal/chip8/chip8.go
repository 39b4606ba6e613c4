// Package chip8 implements the CHIP-8 virtual machine core: memory, register
// file, stack, timers, framebuffer, keypad and the fetch-decode-execute
// engine with its configurable quirk behaviors.
//
// The core owns no presentation, audio or input layer. The host drives it
// with two independent clocks: Step executes single instruction cycles at the
// configured CPU rate and TickTimers advances the 60 Hz timers. A VM is not
// safe for concurrent use, the host must serialize all calls.
package chip8

import (
	"fmt"
	"math/rand/v2"
)

// Status describes whether the VM can make instruction progress. Blocking
// opcodes suspend the VM instead of busy-waiting so the host can integrate
// the wait with its own event loop.
type Status int

const (
	// StatusRunning means the next Step call executes an instruction.
	StatusRunning Status = iota
	// StatusAwaitingKey means the VM is suspended in the key-wait opcode
	// until a new key press arrives with a keypad snapshot.
	StatusAwaitingKey
	// StatusAwaitingBlank means a draw was deferred by the display wait
	// quirk until the next timer tick boundary.
	StatusAwaitingBlank
)

// RandomSource produces the pseudo-random bytes consumed by the Cxkk opcode.
// It is injected at construction so tests can substitute a fixed sequence.
type RandomSource func() uint8

// Options configures a VM at construction time.
type Options struct {
	// Quirks selects the historical interpreter behaviors, immutable for the
	// lifetime of the VM. The zero value disables every quirk.
	Quirks Quirks
	// Rand is the random byte source, defaults to a seeded generator.
	Rand RandomSource
}

// VM is a single CHIP-8 virtual machine instance. All emulated state is owned
// exclusively by the instance, there is no process wide state.
type VM struct {
	memory  Memory
	regs    Registers
	stack   Stack
	timers  Timers
	display Display
	keypad  Keypad
	quirks  Quirks
	rand    RandomSource

	status       Status
	waitRegister uint8 // destination register of a pending key-wait
	drewThisTick bool  // a draw already happened in the current tick interval
}

// New returns a VM in power-on state with the font sprites loaded.
func New(opts Options) *VM {
	randSource := opts.Rand
	if randSource == nil {
		randSource = func() uint8 {
			return uint8(rand.UintN(256))
		}
	}

	return &VM{
		memory: newMemory(),
		regs:   newRegisters(),
		quirks: opts.Quirks,
		rand:   randSource,
	}
}

// LoadROM copies a program into memory at the program start address 0x200.
// Programs larger than the 3584 byte program space are rejected.
func (vm *VM) LoadROM(rom []byte) error {
	if err := vm.memory.loadROM(rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	return nil
}

// Reset restores the power-on state of registers, stack, timers, display and
// keypad. Memory contents, including a loaded ROM, are kept.
func (vm *VM) Reset() {
	vm.regs = newRegisters()
	vm.stack = Stack{}
	vm.timers = Timers{}
	vm.display.Clear()
	vm.keypad = Keypad{}
	vm.status = StatusRunning
	vm.waitRegister = 0
	vm.drewThisTick = false
}

// Status returns the current execution status of the VM.
func (vm *VM) Status() Status {
	return vm.status
}

// Display returns the framebuffer for presentation. The host must treat it
// as read-only.
func (vm *VM) Display() *Display {
	return &vm.display
}

// SetKeys feeds a new snapshot of the 16 logical key states into the VM.
// The host is the sole writer of keypad state.
func (vm *VM) SetKeys(keys [KeyCount]bool) {
	vm.keypad.Set(keys)
}

// SoundActive reports whether the sound timer is nonzero. The host derives
// its beeper state from this boolean.
func (vm *VM) SoundActive() bool {
	return vm.timers.SoundActive()
}

// PC returns the current program counter.
func (vm *VM) PC() uint16 {
	return vm.regs.PC
}

// OpcodeAt reads the big-endian 16-bit instruction word at the given address
// without executing it. Used by tracing hosts.
func (vm *VM) OpcodeAt(addr uint16) (uint16, error) {
	if err := vm.memory.checkRange(addr, 2); err != nil {
		return 0, err
	}
	return uint16(vm.memory.data[addr])<<8 | uint16(vm.memory.data[addr+1]), nil
}

// TickTimers advances the delay and sound timers by one 60 Hz interval and
// marks the tick boundary that ends a display wait.
func (vm *VM) TickTimers() {
	vm.timers.Tick()
	vm.drewThisTick = false
	if vm.status == StatusAwaitingBlank {
		vm.status = StatusRunning
	}
}

// Step runs a single instruction cycle: fetch, decode, execute. A failed
// instruction never leaves partially mutated state.
//
// While the VM is suspended, Step makes no instruction progress: a pending
// key-wait completes only when a keypad snapshot contains a newly pressed
// key, and a deferred draw stays pending until the next TickTimers call.
func (vm *VM) Step() error {
	switch vm.status {
	case StatusAwaitingKey:
		key, ok := vm.keypad.justPressed()
		if !ok {
			return nil
		}
		vm.regs.V[vm.waitRegister] = key
		vm.status = StatusRunning
		return nil

	case StatusAwaitingBlank:
		return nil
	}

	opcode, err := vm.fetch()
	if err != nil {
		return err
	}
	return vm.execute(opcode)
}

// fetch reads the instruction word at the program counter and advances the
// counter past it before dispatch, so jump and call targets are absolute.
func (vm *VM) fetch() (uint16, error) {
	opcode, err := vm.OpcodeAt(vm.regs.PC)
	if err != nil {
		return 0, fmt.Errorf("fetching instruction: %w", err)
	}
	vm.regs.PC += 2
	return opcode, nil
}
