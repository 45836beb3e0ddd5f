package utils

import "testing"

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"example.com", "https://example.com"},
		{"www.example.com", "https://www.example.com"},
		{"https://x.com", "https://x.com"},
		{"http://insecure.example", "http://insecure.example"},
		// Best-effort: malformed input is prefixed, never rejected.
		{"not a url", "https://not a url"},
	}

	for _, c := range cases {
		if got := NormalizeURL(c.in); got != c.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
