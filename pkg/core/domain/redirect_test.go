package domain

import "testing"

func TestTargetFromURL(t *testing.T) {
	tests := []struct {
		raw          string
		wantFragment string
		wantShort    string
	}{
		{"https://sho.rt/#/abc123", "/abc123", ""},
		{"https://sho.rt/#abc123", "abc123", ""},
		{"//abc123", "//abc123", ""},
		{"#//abc123", "//abc123", ""},
		{"https://sho.rt/abc123", "/abc123", ""},
		{"https://sho.rt", "", ""},
		{"/?short=abc123", "/", "abc123"},
		{"https://sho.rt/?short=abc123#/xyz789", "/xyz789", "abc123"},
		{"abc123", "abc123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := TargetFromURL(tt.raw)
			if got.Fragment != tt.wantFragment {
				t.Errorf("Fragment = %q, want %q", got.Fragment, tt.wantFragment)
			}
			if short := got.Query.Get("short"); short != tt.wantShort {
				t.Errorf("short = %q, want %q", short, tt.wantShort)
			}
		})
	}
}
