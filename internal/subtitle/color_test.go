package subtitle

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"white", "&H00FFFFFF"},
		{"Yellow", "&H0000FFFF"},
		{"#FF8000", "&H000080FF"},
		{"112233", "&H00332211"},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "chartreuse-ish", "#12345", "#GGGGGG"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
