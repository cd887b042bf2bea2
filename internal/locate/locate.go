// Package locate resolves a function name in a compiled binary to the
// (file, start_line, end_line) of its source definition, using a symbol
// table lister (nm) and a line-info resolver (addr2line) as scoped
// subprocess collaborators.
package locate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Location is a resolved function body span in the source tree.
type Location struct {
	File      string
	StartLine int
	EndLine   int
}

// IsZero reports whether the location failed to resolve; the traversal
// driver treats a zero Location as "skip this function" rather than fatal.
func (l Location) IsZero() bool {
	return l.File == "" && l.StartLine == 0 && l.EndLine == 0
}

// Locator resolves function locations against one binary.
type Locator struct {
	Binary string
	Runner Runner
}

// NewLocator returns a Locator backed by real nm/addr2line subprocesses.
func NewLocator(binary string) *Locator {
	return &Locator{Binary: binary, Runner: ExecRunner{}}
}

// Locate resolves function to its source span. A zero Location with a nil
// error means the symbol or its line info could not be resolved — the
// caller should skip the function, not abort the run. A non-nil error
// means the external tool itself could not be run; the caller may log it
// but should still treat the function as skippable, per §7's "unresolvable
// function is non-fatal" taxonomy.
func (l *Locator) Locate(ctx context.Context, function string) (Location, error) {
	start, size, err := l.symbolAddr(ctx, function)
	if err != nil {
		return Location{}, err
	}
	if start == 0 && size == 0 {
		return Location{}, nil
	}

	// Subtract 1 from the address to cover the leading brace/prologue.
	cursor := start
	if cursor > 0 {
		cursor--
	}
	end := start + size

	startFile, startLine, err := l.resolveLine(ctx, cursor, end, true)
	if err != nil {
		return Location{}, err
	}
	if startFile == "" {
		return Location{}, nil
	}

	_, endLine, err := l.resolveLine(ctx, end, cursor, false)
	if err != nil {
		return Location{}, err
	}
	if endLine == 0 {
		return Location{}, nil
	}

	return Location{File: startFile, StartLine: startLine, EndLine: endLine}, nil
}

// symbolAddr runs `nm -S` against the binary and finds the text-segment
// entry (type T or t) whose name equals function, returning its address and
// size. Both are zero if the symbol is absent.
func (l *Locator) symbolAddr(ctx context.Context, function string) (addr, size uint64, err error) {
	out, err := l.Runner.Run(ctx, "nm", "-S", l.Binary)
	if err != nil {
		return 0, 0, fmt.Errorf("locate %s: %w", function, err)
	}

	for _, line := range strings.Split(out, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) < 4 {
			continue
		}
		if (tokens[2] != "T" && tokens[2] != "t") || tokens[3] != function {
			continue
		}
		a, aerr := strconv.ParseUint(tokens[0], 16, 64)
		s, serr := strconv.ParseUint(tokens[1], 16, 64)
		if aerr != nil || serr != nil {
			continue
		}
		return a, s, nil
	}
	return 0, 0, nil
}

// resolveLine walks addr2line one byte at a time from start towards bound
// (inclusive) until a defined (file, line) pair is returned, or bound is
// reached without one. forward controls the walk direction.
func (l *Locator) resolveLine(ctx context.Context, start, bound uint64, forward bool) (file string, line int, err error) {
	cursor := start
	for {
		out, rerr := l.Runner.Run(ctx, "addr2line", "-e", l.Binary, "-f", "-C", fmt.Sprintf("0x%x", cursor))
		if rerr != nil {
			return "", 0, fmt.Errorf("resolve line: %w", rerr)
		}
		if f, ln, ok := parseAddr2Line(out); ok {
			return f, ln, nil
		}

		if forward {
			if cursor >= bound {
				return "", 0, nil
			}
			cursor++
		} else {
			if cursor <= bound {
				return "", 0, nil
			}
			cursor--
		}
	}
}

// parseAddr2Line parses `addr2line -f -C` output of the form
// "function_name\nfile:line\n" into (file, line). Returns ok=false when the
// file or line is undefined ("??").
func parseAddr2Line(out string) (file string, line int, ok bool) {
	nl := strings.Index(out, "\n")
	if nl == -1 {
		return "", 0, false
	}
	rest := strings.TrimRight(out[nl+1:], "\n")

	colon := strings.LastIndex(rest, ":")
	if colon == -1 {
		return "", 0, false
	}
	file = rest[:colon]
	lineStr := rest[colon+1:]

	if file == "" || file == "??" || strings.Contains(lineStr, "?") {
		return "", 0, false
	}

	n, perr := strconv.Atoi(strings.TrimSpace(leadingDigits(lineStr)))
	if perr != nil || n == 0 {
		return "", 0, false
	}
	return file, n, true
}

// leadingDigits returns the leading run of decimal digits in s, mirroring
// C++'s std::stoi behaviour of parsing a prefix and ignoring the rest.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
