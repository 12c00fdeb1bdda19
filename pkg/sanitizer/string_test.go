package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Renault Clio  ", "Renault Clio"},
		{"multiple spaces between words", "Renault    Clio", "Renault Clio"},
		{"tabs and newlines", "Renault\t\nClio", "Renault Clio"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Citroën C3 Aircross™ ", "Citroën C3 Aircross™"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ab-123-cd", "AB-123-CD"},
		{" ab 123 cd ", "AB123CD"},
		{"AB123CD", "AB123CD"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizePlate(tt.input)
		if got != tt.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := NormalizePlate(got); again != got {
			t.Errorf("NormalizePlate is not idempotent: %q -> %q", got, again)
		}
	}
}

func TestNormalizeLogin(t *testing.T) {
	if got := NormalizeLogin("  Alice "); got != "Alice" {
		t.Errorf("NormalizeLogin() = %q, want %q", got, "Alice")
	}
}
