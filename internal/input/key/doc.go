// Package key provides the key and button codes used by joystick profiles.
//
// Codes are Linux input event codes of type EV_KEY:
//
//   - Code: a key (KEY_*) or button (BTN_*) code
//   - Modifier: a set of left/right Shift, Control and Alt keys held
//     around a key press in a key combination
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - evdev names: "KEY_A", "BTN_TRIGGER", "BTN_SOUTH"
//   - short names: "A", "F1", "LeftShift"
//   - numbers: "30", "0x120"
//
// Names are matched case-insensitively. A code always formats back to its
// canonical evdev name, so profiles written by the tool use that form.
package key
