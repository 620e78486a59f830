package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world",
			maxLen:   8,
			expected: "hello...",
		},
		{
			name:     "tiny maxLen returns ellipsis",
			input:    "hello",
			maxLen:   3,
			expected: "...",
		},
		{
			name:     "multibyte runes counted as one",
			input:    "héllo wörld",
			maxLen:   8,
			expected: "héllo...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hello world")

	got := TruncateANSI(styled, 8)
	if lipgloss.Width(got) > 8 {
		t.Errorf("Expected width <= 8, got %d", lipgloss.Width(got))
	}

	unstyled := TruncateANSI("hello", 10)
	if unstyled != "hello" {
		t.Errorf("Expected short string unchanged, got %q", unstyled)
	}

	if TruncateANSI("hello world", 2) != "..." {
		t.Errorf("Expected bare ellipsis for tiny width")
	}
}
