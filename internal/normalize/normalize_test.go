package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lower", in: "alice", want: "alice"},
		{name: "mixed case", in: "AlIcE", want: "alice"},
		{name: "spaces", in: "  Mary   Ann ", want: "mary ann"},
		{name: "decomposed accent", in: "José", want: "josé"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Name(tt.in); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTrimKeepsCase(t *testing.T) {
	if got := Trim("  Big   Al "); got != "Big Al" {
		t.Errorf("Trim() = %q", got)
	}
}
