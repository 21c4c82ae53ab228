package service

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Food", "Food"},
		{"  Food  ", "Food"},
		{"Fast   Food", "Fast Food"},
		{"Fast \t Food  Places", "Fast Food Places"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  error
	}{
		{"ok", "Food", nil},
		{"min length", "Fo", nil},
		{"max length", strings.Repeat("a", 31), nil},
		{"too short", "F", ErrTitleTooShort},
		{"empty", "", ErrTitleTooShort},
		{"too long", strings.Repeat("a", 32), ErrTitleTooLong},
		{"command prefix", "/food", ErrTitleReserved},
		{"cyrillic counts runes", strings.Repeat("я", 31), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateTitle(tt.title); !errors.Is(got, tt.want) {
				t.Fatalf("validateTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
