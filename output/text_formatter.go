package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mxu49/taintwalk/internal/traversal"
)

// TextFormatter formats a traversal result as human-readable text.
type TextFormatter struct {
	writer io.Writer
	logger *Logger
}

// NewTextFormatter creates a text formatter writing to stdout.
func NewTextFormatter(logger *Logger) *TextFormatter {
	return &TextFormatter{writer: os.Stdout, logger: logger}
}

// NewTextFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewTextFormatterWithWriter(w io.Writer, logger *Logger) *TextFormatter {
	return &TextFormatter{writer: w, logger: logger}
}

// Format writes result as formatted text.
func (f *TextFormatter) Format(result *traversal.Result) error {
	fmt.Fprintf(f.writer, "taintwalk: sink %s\n\n", result.Sink)

	if result.Diagnostic != "" {
		fmt.Fprintln(f.writer, result.Diagnostic)
		return nil
	}

	if len(result.Chains) == 0 {
		fmt.Fprintln(f.writer, "no call chain into the sink was found")
		return nil
	}

	for i, chain := range result.Chains {
		f.writeChain(i, chain, result)
	}

	f.writeSummary(result)
	return nil
}

func (f *TextFormatter) writeChain(index int, chain []string, result *traversal.Result) {
	fmt.Fprintf(f.writer, "Chain %d: %s\n", index+1, strings.Join(chain, " -> "))

	any := false
	for _, fn := range chain {
		entry, ok := result.Map[fn]
		if !ok {
			continue
		}
		locals := entry.SortedLocals()
		slots := entry.SortedSlots()
		if len(locals) == 0 && len(slots) == 0 {
			continue
		}
		any = true
		fmt.Fprintf(f.writer, "  %s\n", fn)
		if len(locals) > 0 {
			fmt.Fprintf(f.writer, "    tainted locals: %s\n", strings.Join(locals, ", "))
		}
		if len(slots) > 0 {
			fmt.Fprintf(f.writer, "    tainted slots:  %s\n", strings.Join(slots, ", "))
		}
	}
	if !any {
		fmt.Fprintln(f.writer, "  (no taint propagated along this chain)")
	}
	fmt.Fprintln(f.writer)
}

func (f *TextFormatter) writeSummary(result *traversal.Result) {
	tainted := map[string]struct{}{}
	for _, chain := range result.Chains {
		for _, fn := range chain {
			if entry, ok := result.Map[fn]; ok && (len(entry.Locals) > 0 || len(entry.Slots) > 0) {
				tainted[fn] = struct{}{}
			}
		}
	}
	fmt.Fprintf(f.writer, "Summary: %d chain(s), %d function(s) carrying taint\n", len(result.Chains), len(tainted))
}
