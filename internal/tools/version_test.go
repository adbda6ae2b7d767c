package tools

import "testing"

func TestMeetsMinimum(t *testing.T) {
	cases := []struct {
		version string
		minimum string
		want    bool
	}{
		{"3.9", "3.9", true},
		{"3.9.0", "3.9", true},
		{"3.12", "3.9", true}, // multi-component compare, not string compare
		{"3.12.1", "3.9", true},
		{"3.8.19", "3.9", false},
		{"2.7.18", "3.9", false},
		{"10.0", "9.9", true},
		{"1.2", "1.2.1", false},
		{"anything", "", true},
		{"", "3.9", false},
	}

	for _, tc := range cases {
		if got := meetsMinimum(tc.version, tc.minimum); got != tc.want {
			t.Errorf("meetsMinimum(%q, %q) = %v, want %v", tc.version, tc.minimum, got, tc.want)
		}
	}
}

func TestNormalizeVersion(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"Python 3.12.1", "3.12.1"},
		{"GNU bash, version 5.2.21(1)-release (x86_64-pc-linux-gnu)", "5.2.21"},
		{"just 1.25.2", "1.25.2"},
		{"uv 0.4.18 (hash 2024-10-01)", "0.4.18"},
		{"v20.11.1", "20.11.1"},
		{"no digits here", "no digits here"},
	}

	for _, tc := range cases {
		if got := normalizeVersion(tc.line); got != tc.want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo\nthree"); got != "one" {
		t.Fatalf("firstLine = %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Fatalf("firstLine = %q", got)
	}
}
