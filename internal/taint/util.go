package taint

import "strings"

// isNumericLiteral reports whether s looks like a numeric literal rather
// than a variable reference, so literals never pollute a tainted set.
func isNumericLiteral(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	// A literal starts with a digit or '.', after an optional sign; this
	// keeps identifiers such as "x1" from being taken for hex notation.
	if t := strings.TrimLeft(s, "+-"); t == "" || !(t[0] >= '0' && t[0] <= '9' || t[0] == '.') {
		return false
	}
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == 'x' || r == 'X':
			// allow float/hex notation
		case (r == '-' || r == '+') && i == 0:
			// leading sign
		default:
			return false
		}
	}
	return digits > 0
}

func anyTainted(vars []string, tainted map[string]struct{}) bool {
	for _, v := range vars {
		if _, ok := tainted[v]; ok {
			return true
		}
	}
	return false
}

// callNamePrefix returns the callee name portion of a call element's raw
// content, the text before its first '('.
func callNamePrefix(content string) string {
	idx := strings.IndexByte(content, '(')
	if idx == -1 {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(content[:idx])
}

// splitParameter tokenizes a <parameter> element's raw text by whitespace,
// matching the original analyzer's plain split rather than an XML-aware
// variable extraction. srcxml.ParseElements has already unlinked the
// inner declaration's <type>, so the text is normally just the name; any
// token left in it still counts as one parameter position.
func splitParameter(content string) []string {
	return strings.Fields(content)
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
