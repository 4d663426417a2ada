package model

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Status
	}{
		{
			name:     "approved",
			input:    "approved",
			expected: StatusApproved,
		},
		{
			name:     "rejected",
			input:    "rejected",
			expected: StatusRejected,
		},
		{
			name:     "pending",
			input:    "pending",
			expected: StatusPending,
		},
		{
			name:     "mixed case approved",
			input:    "Approved",
			expected: StatusApproved,
		},
		{
			name:     "upper case rejected",
			input:    "REJECTED",
			expected: StatusRejected,
		},
		{
			name:     "empty string falls back to pending",
			input:    "",
			expected: StatusPending,
		},
		{
			name:     "garbage falls back to pending",
			input:    "archived",
			expected: StatusPending,
		},
		{
			name:     "whitespace is not trimmed",
			input:    " approved",
			expected: StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStatus(tt.input); got != tt.expected {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStatusString_RoundTrip(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if got := ParseStatus(s.String()); got != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s.String(), got, s)
		}
	}
}
