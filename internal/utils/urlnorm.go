package utils

import "strings"

// NormalizeURL prefixes bare addresses with https://. It is best-effort
// normalization, not validation: malformed input passes through with
// the prefix attached, and inputs that already carry a scheme are
// returned unchanged.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
