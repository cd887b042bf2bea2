package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mxu49/taintwalk/internal/calltrace"
)

// LoadWhitelist reads a plain-text whitelist of one function name per
// line (anything from the first "(" on is dropped and the rest trimmed;
// blank lines and "#"-prefixed comments ignored) — the set of
// functions a dynamically-collected call-trace log is trusted to
// contribute edges for, so noise from uninstrumented or irrelevant
// libraries doesn't pollute the graph.
func LoadWhitelist(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load whitelist %s: %w", path, err)
	}
	defer f.Close()

	out := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if paren := strings.Index(line, "("); paren != -1 {
			line = line[:paren]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load whitelist %s: %w", path, err)
	}
	return out, nil
}

// ReplayCallTraceLog reads a dynamically-collected call-trace log — one
// "caller callee" pair per line — and adds each edge whose caller and
// callee both appear in whitelist to graph, merging runtime-observed
// calls into the backtrace-derived call graph. An empty whitelist admits
// every edge; lines without exactly two fields are skipped.
func ReplayCallTraceLog(path string, whitelist map[string]struct{}, graph *calltrace.Graph) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("replay call-trace log %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		caller, callee := fields[0], fields[1]
		if !inWhitelist(whitelist, caller) || !inWhitelist(whitelist, callee) {
			continue
		}
		graph.AddCall(caller, callee)
	}
	return scanner.Err()
}

func inWhitelist(whitelist map[string]struct{}, name string) bool {
	if len(whitelist) == 0 {
		return true
	}
	_, ok := whitelist[name]
	return ok
}
