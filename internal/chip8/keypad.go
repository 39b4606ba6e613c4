package chip8

// KeyCount is the number of logical keys on the CHIP-8 keypad.
const KeyCount = 16

// Keypad is a snapshot of the 16 logical key states. The host writes a new
// snapshot between cycles, the key-test and key-wait opcodes read it. The
// keypad additionally tracks which keys were newly pressed by the latest
// snapshot so the key-wait opcode can react to edges instead of held keys.
type Keypad struct {
	keys    [KeyCount]bool
	pressed [KeyCount]bool
}

// Set replaces the key state snapshot and records the edge-triggered
// transitions from not-pressed to pressed.
func (k *Keypad) Set(keys [KeyCount]bool) {
	for i, down := range keys {
		k.pressed[i] = down && !k.keys[i]
	}
	k.keys = keys
}

// Down reports whether a key is currently held. Only the low nibble of the
// key code is significant.
func (k *Keypad) Down(key uint8) bool {
	return k.keys[key&0x0F]
}

// clearEdges forgets recorded key press transitions. Called when a key-wait
// begins so that only presses arriving after the suspension complete it.
func (k *Keypad) clearEdges() {
	k.pressed = [KeyCount]bool{}
}

// justPressed returns the lowest key code that transitioned to pressed in
// the latest snapshot, or false if no key did.
func (k *Keypad) justPressed() (uint8, bool) {
	for i, edge := range k.pressed {
		if edge {
			return uint8(i), true
		}
	}
	return 0, false
}
