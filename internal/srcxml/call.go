package srcxml

import "strings"

// ExtractFromCall splits a call expression's raw text into its positional
// argument tokens by a depth-tracking character scan between the first
// '(' and the matching final ')', rather than parsing XML — this mirrors
// the original analyzer's character-scan fallback, which also tolerates
// empty segments left by an optimized-out string literal argument.
func ExtractFromCall(content string) []string {
	start := strings.IndexByte(content, '(')
	if start == -1 {
		return nil
	}
	end := strings.LastIndexByte(content, ')')
	if end == -1 || end <= start {
		return nil
	}
	inner := content[start+1 : end]

	var args []string
	depth := 0
	var cur strings.Builder
	for _, r := range inner {
		switch r {
		case '(':
			depth++
			cur.WriteRune(r)
		case ')':
			depth--
			cur.WriteRune(r)
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(cur.String()))
				cur.Reset()
				continue
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	args = append(args, strings.TrimSpace(cur.String()))
	return args
}
