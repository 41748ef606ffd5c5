package authflow

import "strings"

// OTPLength is the number of verification-code digits.
const OTPLength = 6

// OTP models the six single-digit entry slots of the verify step. Typing a
// digit advances focus; backspace on an empty slot retreats; a pasted
// six-digit string fills every slot. Type and Paste report completion so
// the caller can auto-submit.
type OTP struct {
	slots [OTPLength]rune
	focus int
}

// Focus returns the index of the focused slot.
func (o *OTP) Focus() int { return o.focus }

// Digit returns the digit in slot i as a string, empty when unset.
func (o *OTP) Digit(i int) string {
	if i < 0 || i >= OTPLength || o.slots[i] == 0 {
		return ""
	}
	return string(o.slots[i])
}

// Code returns the concatenated digits entered so far.
func (o *OTP) Code() string {
	var b strings.Builder
	for _, r := range o.slots {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Filled reports whether every slot holds a digit.
func (o *OTP) Filled() bool {
	for _, r := range o.slots {
		if r == 0 {
			return false
		}
	}
	return true
}

// Type enters a digit into the focused slot and advances focus. It returns
// true when the keystroke filled the last empty slot, signalling
// auto-submit. Non-digit input is ignored.
func (o *OTP) Type(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	o.slots[o.focus] = r
	if o.focus < OTPLength-1 {
		o.focus++
	}
	return o.Filled()
}

// Backspace clears the focused slot, or moves focus back when the slot is
// already empty. The retreat itself never erases; a second backspace does.
func (o *OTP) Backspace() {
	if o.slots[o.focus] != 0 {
		o.slots[o.focus] = 0
		return
	}
	if o.focus > 0 {
		o.focus--
	}
}

// Paste fills all slots from a pasted string when it is exactly six
// digits, focusing the last slot. It returns true when the paste completed
// the code, signalling auto-submit.
func (o *OTP) Paste(s string) bool {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != OTPLength {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	for i, r := range trimmed {
		o.slots[i] = r
	}
	o.focus = OTPLength - 1
	return true
}

// Clear empties every slot and refocuses the first.
func (o *OTP) Clear() {
	o.slots = [OTPLength]rune{}
	o.focus = 0
}
