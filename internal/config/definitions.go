// Package config loads the run's static inputs: the macro/definition
// aliasing table, seed pollution info, the sink registry, and the
// whitelist + call-trace log used to augment the backtrace-derived call
// graph with dynamically observed edges.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadDefinitions reads the function-name -> aliases table (e.g. an
// interceptor wrapper or typedef'd name that should also satisfy a
// "call into previousFunction" match during the backward sweep) from a
// JSON file of the form {"strcpy": ["__wrap_strcpy"]}.
//
// The file is read exactly once; an earlier version of this loader read
// it twice into the same variable, which was harmless only because JSON
// decoding is idempotent, and is not reproduced here.
func LoadDefinitions(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load definitions %s: %w", path, err)
	}

	var defs map[string][]string
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse definitions %s: %w", path, err)
	}
	return defs, nil
}
