package common

import "strings"

// HasAny returns true if set contains any of the values.
func HasAny(set []string, values ...string) bool {
	for _, v := range values {
		for _, s := range set {
			if s == v {
				return true
			}
		}
	}
	return false
}

// ContainsFold returns true if s contains sub, ignoring case.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
