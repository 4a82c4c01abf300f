package domain

import "strings"

// ExclusionSet holds currency codes disallowed as conversion targets.
// It is built once at startup and read-only afterwards.
type ExclusionSet map[string]struct{}

func NewExclusionSet(codes []string) ExclusionSet {
	s := make(ExclusionSet, len(codes))
	for _, c := range codes {
		s[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}
	return s
}

func (s ExclusionSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}
