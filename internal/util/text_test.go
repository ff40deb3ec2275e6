package util

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "Hello World"},
		{"  padded  ", "padded"},
		{"\t\nnewlines\n", "newlines"},
		{"line one\nline two", "line one\nline two"},
		{"Cafe\u0301", "Caf\u00e9"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := CleanText(tt.input)
			if result != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCleanOptional(t *testing.T) {
	if CleanOptional(nil) != nil {
		t.Error("nil should stay nil")
	}

	blank := "   "
	got := CleanOptional(&blank)
	if got == nil || *got != "" {
		t.Errorf("blank should become empty (absent), got %v", got)
	}
}
