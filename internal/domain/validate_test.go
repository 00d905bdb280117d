package domain

import "testing"

func TestIsHexColor(t *testing.T) {
	valid := []string{"#000000", "#FFFFFF", "#E8c4a0", "#1a2B3c"}
	for _, s := range valid {
		if !IsHexColor(s) {
			t.Fatalf("%q: want valid", s)
		}
	}

	invalid := []string{"", "#FFF", "FFFFFF", "#GGGGGG", "#1234567", "#12345", " #123456", "#123456 "}
	for _, s := range invalid {
		if IsHexColor(s) {
			t.Fatalf("%q: want invalid", s)
		}
	}
}
