// Package extract slices a function's body out of its source file and
// reduces it to the single-line, cast/comment/string-stripped form the
// source-XML facility (srcml) expects on its stdin.
package extract

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ReadLines returns the text of path between startLine and endLine
// inclusive (1-indexed), the Go equivalent of the awk NR-range extraction
// used to carve a function body out of its source file.
func ReadLines(path string, startLine, endLine int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read lines %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		if n < startLine {
			continue
		}
		if n > endLine {
			break
		}
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read lines %s: %w", path, err)
	}
	return strings.Join(out, "\n"), nil
}

// StripLeadingBraces removes leading '}' runes left over when the sliced
// range begins mid-block (the previous function's closing brace).
func StripLeadingBraces(s string) string {
	return strings.TrimLeft(s, "}")
}

var (
	castRe        = regexp.MustCompile(`(reinterpret_cast|static_cast|dynamic_cast|const_cast)<[^<>]*>\(([^()]*)\)`)
	cStyleCastRe  = regexp.MustCompile(`\(\s*(?:const\s+)?[A-Za-z_][A-Za-z0-9_:]*\s*[\*&]*\s*\)\s*([A-Za-z0-9_]+)`)
	sizeofCallRe  = regexp.MustCompile(`sizeof\s*\(([^()]*)\)`)
	sizeofBareRe  = regexp.MustCompile(`sizeof\s+([A-Za-z_][A-Za-z0-9_]*)`)
	lineCommentRe = regexp.MustCompile(`//.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	stringLitRe   = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// PreprocessCode mirrors the original static analyzer's line-by-line
// normalization: strip C++ casts and sizeof wrappers down to their inner
// expression, drop comments and string literal contents, then join every
// remaining non-empty line with a single space so srcml sees one logical
// line per function. Block comments are removed before the split, so one
// that spans several lines is dropped whole.
func PreprocessCode(code string) string {
	code = blockCommentRe.ReplaceAllString(code, "")
	lines := strings.Split(code, "\n")
	var kept []string
	for _, line := range lines {
		line = castRe.ReplaceAllString(line, "$2")
		line = cStyleCastRe.ReplaceAllString(line, "$1")
		line = sizeofCallRe.ReplaceAllString(line, "$1")
		line = sizeofBareRe.ReplaceAllString(line, "$1")
		line = lineCommentRe.ReplaceAllString(line, "")
		line = stringLitRe.ReplaceAllString(line, `""`)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}
