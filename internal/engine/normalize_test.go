package engine

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "collapses horizontal whitespace",
			input:    "Python   Developer\t\twanted",
			expected: "Python Developer wanted",
		},
		{
			name:     "preserves line structure",
			input:    "John Smith\nSoftware Engineer",
			expected: "John Smith\nSoftware Engineer",
		},
		{
			name:     "normalizes CRLF line endings",
			input:    "line one\r\nline two\rline three",
			expected: "line one\nline two\nline three",
		},
		{
			name:     "strips markup and decodes entities",
			input:    "<p>Python &amp; Django</p>",
			expected: "Python & Django",
		},
		{
			name:     "caps blank line runs",
			input:    "Requirements:\n\n\n\n- Python",
			expected: "Requirements:\n\n- Python",
		},
		{
			name:     "trims leading and trailing whitespace",
			input:    "\n\n  Senior Developer  \n\n",
			expected: "Senior Developer",
		},
		{
			name:     "drops control characters",
			input:    "Python\x00 Develo\x07per",
			expected: "Python Developer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"<b>Senior</b>   Python\r\nDeveloper\n\n\n\nRemote",
		"plain text already normalized",
		"bullets:\n- one\n- two",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestFlatten(t *testing.T) {
	input := "Senior Python\nDeveloper\t Remote"
	expected := "senior python developer remote"
	if result := Flatten(input); result != expected {
		t.Errorf("Flatten() = %q, want %q", result, expected)
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		term     string
		expected bool
	}{
		{"simple match", "experience with python required", "python", true},
		{"case insensitive", "experience with PYTHON required", "Python", true},
		{"no partial match", "javascript developer", "java", false},
		{"term with plus signs", "knowledge of c++ required", "C++", true},
		{"term with dot", "node.js experience", "Node.js", true},
		{"multi word term", "google cloud platform", "Google Cloud", true},
		{"empty term", "anything", "", false},
		{"absent term", "ruby on rails", "python", false},
		{"short token not inside words", "use r for statistics", "R", true},
		{"short token inside word", "ruby developer", "R", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := containsWord(tt.text, tt.term); result != tt.expected {
				t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.term, result, tt.expected)
			}
		})
	}
}

func TestCountWord(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		term     string
		expected int
	}{
		{"multiple occurrences", "python here, python there, python everywhere", "python", 3},
		{"zero occurrences", "ruby on rails", "python", 0},
		{"no substring counting", "javascript and java", "java", 1},
		{"empty term", "text", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := countWord(tt.text, tt.term); result != tt.expected {
				t.Errorf("countWord(%q, %q) = %d, want %d", tt.text, tt.term, result, tt.expected)
			}
		})
	}
}
