package common

// Key identifies a keyboard key independently of any character encoding.
// The values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

const (
	KeyUnknown   Key = -1
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyA         Key = 65  // A key (ASCII)
	KeyD         Key = 68  // D key (ASCII)
	KeyE         Key = 69  // E key (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyR         Key = 82  // R key (ASCII)
	KeyS         Key = 83  // S key (ASCII)
	KeyW         Key = 87  // W key (ASCII)
	KeyEscape    Key = 256 // Escape key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)

	Key0 Key = 48 // 0 key (ASCII)
	Key9 Key = 57 // 9 key (ASCII)
)

// Additional non-printable keys
const (
	KeyLeftShift  Key = 340 // Left Shift (GLFW)
	KeyRightShift Key = 344 // Right Shift (GLFW)
)

// KeyStates records which keys are currently held down.
// Only keys that have been pressed occupy an entry; the zero value is ready to use.
type KeyStates struct {
	down map[Key]bool
}

// Press marks the key as held down. KeyUnknown is ignored.
func (k *KeyStates) Press(key Key) {
	if key == KeyUnknown {
		return
	}
	if k.down == nil {
		k.down = make(map[Key]bool)
	}
	k.down[key] = true
}

// Release marks the key as no longer held down.
func (k *KeyStates) Release(key Key) {
	delete(k.down, key)
}

// Down reports whether the key is currently held down.
func (k *KeyStates) Down(key Key) bool {
	return k.down[key]
}

// Count returns the number of keys currently held down.
func (k *KeyStates) Count() int {
	return len(k.down)
}

// Reset releases every key, e.g. when the window loses focus.
func (k *KeyStates) Reset() {
	clear(k.down)
}
