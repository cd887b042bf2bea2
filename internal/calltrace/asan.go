package calltrace

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseASanOutput reads a sanitizer backtrace text file. Per line: leading
// whitespace is trimmed, the parenthesised substring between the first '('
// and the next ')' is removed, the remainder is split on whitespace; when
// the line has at least 4 tokens the 4th token is the frame's function
// name. Lines with fewer tokens are ignored. Frames are appended in file
// order (innermost frame first, matching sanitizer output).
func (g *Graph) ParseASanOutput(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("parse asan output: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t")

		if left := strings.Index(line, "("); left != -1 {
			if right := strings.Index(line[left:], ")"); right != -1 {
				line = line[:left] + line[left+right+1:]
			}
		}

		tokens := strings.Fields(line)
		if len(tokens) >= 4 {
			g.Backtrace = append(g.Backtrace, FunctionInfo{Name: tokens[3]})
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("parse asan output: %w", err)
	}
	return nil
}

// AddBacktrace reverses the parsed backtrace (sanitizer output lists the
// innermost frame first; reversing yields caller-to-callee order) and wires
// consecutive frames into the graph as caller->callee edges, imposing the
// crash-ordered chain even where the runtime call-trace wrapper failed to
// observe it dynamically.
func (g *Graph) AddBacktrace() {
	reverse(g.Backtrace)
	for i := 0; i+1 < len(g.Backtrace); i++ {
		g.AddCall(g.Backtrace[i].Name, g.Backtrace[i+1].Name)
	}
}

func reverse(s []FunctionInfo) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
