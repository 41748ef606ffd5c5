package authflow

import "testing"

func typeAll(o *OTP, digits string) bool {
	done := false
	for _, r := range digits {
		done = o.Type(r)
	}
	return done
}

func TestOTPTypeAdvancesFocus(t *testing.T) {
	t.Parallel()
	var o OTP

	if o.Type('1') {
		t.Fatal("first digit reported completion")
	}
	if o.Focus() != 1 {
		t.Fatalf("Focus() = %d, want 1", o.Focus())
	}
	if o.Digit(0) != "1" {
		t.Fatalf("Digit(0) = %q", o.Digit(0))
	}
}

func TestOTPTypeCompletion(t *testing.T) {
	t.Parallel()
	var o OTP

	if typeAll(&o, "12345") {
		t.Fatal("completion reported before the last slot")
	}
	if !o.Type('6') {
		t.Fatal("last digit did not report completion")
	}
	if o.Code() != "123456" {
		t.Fatalf("Code() = %q", o.Code())
	}
	if !o.Filled() {
		t.Fatal("Filled() = false")
	}
	// Focus stays on the last slot; further digits overwrite it.
	if o.Focus() != OTPLength-1 {
		t.Fatalf("Focus() = %d", o.Focus())
	}
	o.Type('9')
	if o.Code() != "123459" {
		t.Fatalf("Code() = %q after overwrite", o.Code())
	}
}

func TestOTPTypeIgnoresNonDigits(t *testing.T) {
	t.Parallel()
	var o OTP

	for _, r := range []rune{'a', ' ', '-', '٣'} {
		if o.Type(r) {
			t.Errorf("Type(%q) reported completion", r)
		}
	}
	if o.Code() != "" || o.Focus() != 0 {
		t.Fatalf("non-digits mutated state: code=%q focus=%d", o.Code(), o.Focus())
	}
}

func TestOTPBackspace(t *testing.T) {
	t.Parallel()
	var o OTP
	typeAll(&o, "123")

	// Focus sits on the empty slot 3; the first backspace only retreats.
	o.Backspace()
	if o.Code() != "123" {
		t.Fatalf("Code() = %q, want 123 after bare retreat", o.Code())
	}
	if o.Focus() != 2 {
		t.Fatalf("Focus() = %d, want 2", o.Focus())
	}

	// The second backspace clears the now-focused digit in place.
	o.Backspace()
	if o.Code() != "12" || o.Focus() != 2 {
		t.Fatalf("code=%q focus=%d, want 12 at slot 2", o.Code(), o.Focus())
	}

	// Alternating retreat/clear empties the code without underflow.
	for i := 0; i < 6; i++ {
		o.Backspace()
	}
	if o.Code() != "" || o.Focus() != 0 {
		t.Fatalf("code=%q focus=%d, want empty at slot 0", o.Code(), o.Focus())
	}
}

func TestOTPBackspaceClearsFilledSlotInPlace(t *testing.T) {
	t.Parallel()
	var o OTP
	typeAll(&o, "123456")

	// With every slot filled, focus rests on the last slot; backspace
	// clears it without retreating.
	o.Backspace()
	if o.Code() != "12345" {
		t.Fatalf("Code() = %q, want 12345", o.Code())
	}
	if o.Focus() != OTPLength-1 {
		t.Fatalf("Focus() = %d, want last slot", o.Focus())
	}
}

func TestOTPPaste(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"exact six digits", "123456", true},
		{"surrounding space trimmed", "  123456  ", true},
		{"too short", "12345", false},
		{"too long", "1234567", false},
		{"non-digit", "12a456", false},
		{"unicode digits rejected", "١٢٣٤٥٦", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o OTP
			got := o.Paste(tt.in)
			if got != tt.want {
				t.Fatalf("Paste(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if tt.want {
				if o.Code() != "123456" {
					t.Errorf("Code() = %q", o.Code())
				}
				if o.Focus() != OTPLength-1 {
					t.Errorf("Focus() = %d, want last slot", o.Focus())
				}
			} else if o.Code() != "" {
				t.Errorf("rejected paste mutated state: %q", o.Code())
			}
		})
	}
}

func TestOTPPasteOverwrites(t *testing.T) {
	t.Parallel()
	var o OTP
	typeAll(&o, "999")

	if !o.Paste("123456") {
		t.Fatal("Paste failed")
	}
	if o.Code() != "123456" {
		t.Fatalf("Code() = %q", o.Code())
	}
}

func TestOTPClear(t *testing.T) {
	t.Parallel()
	var o OTP
	o.Paste("123456")

	o.Clear()

	if o.Code() != "" || o.Focus() != 0 || o.Filled() {
		t.Fatalf("Clear left code=%q focus=%d", o.Code(), o.Focus())
	}
}
