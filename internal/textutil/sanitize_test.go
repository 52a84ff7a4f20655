package textutil

import "testing"

func TestNormalizeSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Smith", "smith"},
		{"inner spaces", "van  der Berg", "van_der_berg"},
		{"punctuation removed", "O'Brien-Smith", "obriensmith"},
		{"unicode letters kept", "Müller", "müller"},
		{"decomposed input", "Mu\u0308ller", "müller"},
		{"digits kept", "Henry 8th", "henry_8th"},
		{"underscore trimmed", "_Ada_", "ada"},
		{"empty", "", "unknown"},
		{"only symbols", "?!/", "unknown"},
		{"whitespace only", "   ", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSegment(tt.in); got != tt.want {
				t.Errorf("NormalizeSegment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSegmentIdempotent(t *testing.T) {
	for _, in := range []string{"Van Der Berg", "Müller", "O'Neil", ""} {
		once := NormalizeSegment(in)
		if twice := NormalizeSegment(once); twice != once {
			t.Errorf("NormalizeSegment not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
