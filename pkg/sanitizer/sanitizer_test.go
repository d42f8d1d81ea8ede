package sanitizer

import "testing"

func TestCustomerName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Alice Smith", "Alice Smith"},
		{"surrounding whitespace", "  Alice Smith  ", "Alice Smith"},
		{"collapses inner runs", "Alice   Smith", "Alice Smith"},
		{"strips control chars", "Alice\x00Smith\n", "Alice Smith"},
		{"preserves case", "alice SMITH", "alice SMITH"},
		{"empty", "", ""},
		{"only whitespace", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CustomerName(tt.input); got != tt.want {
				t.Errorf("CustomerName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	if got := Email("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("expected lowercased trimmed email, got %q", got)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"us formatted", "(212) 555-0187", "+12125550187"},
		{"us e164 passthrough", "+12125550187", "+12125550187"},
		{"empty", "", ""},
		{"garbage left trimmed", "  not-a-phone  ", "not-a-phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Phone(tt.input); got != tt.want {
				t.Errorf("Phone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
