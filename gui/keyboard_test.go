package gui

import "testing"

func TestKeyboardRespectsMaxLength(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		typed  string
		maxLen int
		want   string
	}{
		{"empty", "", "abc", 5, "abc"},
		{"fills to limit", "ab", "cdefg", 4, "abcd"},
		{"initial value truncated", "192.168.100.200", "", 7, "192.168"},
		{"unlimited", "x", "yz", 0, "xyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeyboard("kb", tt.value, tt.maxLen)
			k.Type(tt.typed)
			if got := k.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyboardScancodes(t *testing.T) {
	k := NewKeyboard("kb", "", 20)
	for _, code := range []int{scanA + 2, scanA, scanA + 19, scanOne, scanZero, scanPeriod, scanBackspace, scanSlash} {
		k.Update(&Input{Key: code})
	}
	if got := k.Text(); got != "cat10/" {
		t.Errorf("Text() = %q, want %q", got, "cat10/")
	}
}

func TestKeyboardShiftAppliesOnce(t *testing.T) {
	k := NewKeyboard("kb", "", 10)
	k.mu.Lock()
	k.press(len(keyRows), keyShift)
	k.press(1, 0)
	k.press(1, 1)
	k.mu.Unlock()

	if got := k.Text(); got != "Qw" {
		t.Errorf("Text() = %q, want %q", got, "Qw")
	}
}
