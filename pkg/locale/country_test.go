package locale

import "testing"

func TestInferRegionFromPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"+1 212 555 0147", "US"},
		{"+44 20 7946 0958", "GB"},
		{"+972 52 123 4567", "IL"},
		{"212 555 0147", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := InferRegionFromPhone(tt.phone); got != tt.want {
			t.Errorf("InferRegionFromPhone(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}

func TestCandidateRegions(t *testing.T) {
	got := CandidateRegions("+44 20 7946 0958")
	if len(got) == 0 || got[0] != "GB" {
		t.Errorf("expected GB first for a +44 number, got %v", got)
	}

	got = CandidateRegions("212 555 0147")
	if len(got) != len(DefaultRegions) {
		t.Errorf("expected default regions for unprefixed number, got %v", got)
	}
}
