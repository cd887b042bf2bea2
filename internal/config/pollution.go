package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mxu49/taintwalk/internal/calltrace"
)

// pollutionEntry is the wire shape for one function's seed taint: a list
// of tainted local variable names, and a list of tainted parameter/return
// slots in the "#N" / "$N" / "$*" grammar.
type pollutionEntry struct {
	Var   []string `json:"var"`
	Index []string `json:"index"`
}

// LoadPollution reads the seed taint file — one entry per function whose
// locals or slots are already known tainted at the point the backtrace
// was captured — into calltrace.PollutionInfo values keyed by function
// name.
func LoadPollution(path string) (map[string]calltrace.PollutionInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load pollution info %s: %w", path, err)
	}

	var wire map[string]pollutionEntry
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse pollution info %s: %w", path, err)
	}

	out := make(map[string]calltrace.PollutionInfo, len(wire))
	for function, entry := range wire {
		info := calltrace.PollutionInfo{
			Var:   make(map[string]struct{}, len(entry.Var)),
			Index: make(map[string]struct{}, len(entry.Index)),
		}
		for _, v := range entry.Var {
			info.Var[v] = struct{}{}
		}
		for _, idx := range entry.Index {
			info.Index[idx] = struct{}{}
		}
		out[function] = info
	}
	return out, nil
}
