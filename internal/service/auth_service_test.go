package service

import "testing"

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("generateCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("len(%q) = %d, want 6", code, len(code))
		}
		for _, ch := range code {
			if ch < '0' || ch > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("20 generated codes were all identical")
	}
}

func TestPhonePattern(t *testing.T) {
	valid := []string{"+919876543210", "9876543210", "919876543210"}
	for _, p := range valid {
		if !phonePattern.MatchString(p) {
			t.Errorf("%q rejected, want accepted", p)
		}
	}
	invalid := []string{"", "12345", "+91 98765 43210", "abc1234567", "+1234567890123456"}
	for _, p := range invalid {
		if phonePattern.MatchString(p) {
			t.Errorf("%q accepted, want rejected", p)
		}
	}
}
