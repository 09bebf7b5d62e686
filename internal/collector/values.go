package collector

import "strings"

// trimmed returns a trimmed copy of s, or nil when s is nil or blank.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func stringOr(s *string, def string) string {
	if t := trimmed(s); t != nil {
		return *t
	}
	return def
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
