package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mxu49/taintwalk/internal/taint"
	"github.com/mxu49/taintwalk/internal/traversal"
)

// JSONFormatter formats a traversal result as JSON.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON formatter writing to stdout.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{writer: os.Stdout}
}

// NewJSONFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewJSONFormatterWithWriter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// JSONOutput is the complete JSON document for one triage run.
type JSONOutput struct {
	Tool       JSONTool     `json:"tool"`
	Scan       JSONScan     `json:"scan"`
	Diagnostic string       `json:"diagnostic,omitempty"`
	Chains     []JSONChain  `json:"chains"`
	Summary    JSONSummary  `json:"summary"`
}

// JSONTool carries tool identity.
type JSONTool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// JSONScan carries metadata about the run that produced the output.
type JSONScan struct {
	RunID     string  `json:"run_id"` //nolint:tagliatelle
	Binary    string  `json:"binary"`
	Sink      string  `json:"sink"`
	Timestamp string  `json:"timestamp"`
	Duration  float64 `json:"duration"`
}

// JSONChain is one call chain from a root into the sink, with the taint
// state of every function on it.
type JSONChain struct {
	Functions []string         `json:"functions"`
	Findings  []JSONFunction `json:"findings"`
}

// JSONFunction is the tainted locals and slots known for one function on a chain.
type JSONFunction struct {
	Name   string   `json:"name"`
	Locals []string `json:"tainted_locals,omitempty"` //nolint:tagliatelle
	Slots  []string `json:"tainted_slots,omitempty"`  //nolint:tagliatelle
}

// JSONSummary aggregates counts across every chain.
type JSONSummary struct {
	TotalChains           int `json:"total_chains"`            //nolint:tagliatelle
	TotalTaintedFunctions int `json:"total_tainted_functions"` //nolint:tagliatelle
}

// ScanInfo carries metadata about the run not known to the driver itself.
type ScanInfo struct {
	Binary   string
	Version  string
	Duration time.Duration
}

// Format writes result as JSON.
func (f *JSONFormatter) Format(result *traversal.Result, info ScanInfo) error {
	out := f.build(result, info)
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func (f *JSONFormatter) build(result *traversal.Result, info ScanInfo) JSONOutput {
	version := info.Version
	if version == "" {
		version = "unknown"
	}

	out := JSONOutput{
		Tool: JSONTool{Name: "taintwalk", Version: version},
		Scan: JSONScan{
			RunID:     uuid.NewString(),
			Binary:    info.Binary,
			Sink:      result.Sink,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Duration:  info.Duration.Seconds(),
		},
		Diagnostic: result.Diagnostic,
		Chains:     f.buildChains(result.Chains, result.Map),
	}

	out.Summary = JSONSummary{
		TotalChains:           len(out.Chains),
		TotalTaintedFunctions: countTaintedFunctions(out.Chains),
	}

	return out
}

func (f *JSONFormatter) buildChains(chains [][]string, m taint.Map) []JSONChain {
	out := make([]JSONChain, 0, len(chains))
	for _, chain := range chains {
		jc := JSONChain{Functions: chain}
		for _, fn := range chain {
			entry, ok := m[fn]
			if !ok {
				continue
			}
			locals := entry.SortedLocals()
			slots := entry.SortedSlots()
			if len(locals) == 0 && len(slots) == 0 {
				continue
			}
			jc.Findings = append(jc.Findings, JSONFunction{Name: fn, Locals: locals, Slots: slots})
		}
		out = append(out, jc)
	}
	return out
}

func countTaintedFunctions(chains []JSONChain) int {
	seen := map[string]struct{}{}
	for _, c := range chains {
		for _, f := range c.Findings {
			seen[f.Name] = struct{}{}
		}
	}
	return len(seen)
}
