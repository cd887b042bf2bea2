package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSink is used when the run doesn't name one explicitly — the
// function named in the original crash triage tooling's hardcoded sink
// lookup, now a configurable default rather than a compiled-in constant.
const DefaultSink = "strcpy"

// Sink describes one function the traversal treats as a taint sink: a
// reachability target whose tainted-argument slots are worth reporting.
type Sink struct {
	Name           string `yaml:"name"`
	TaintedArgs    []int  `yaml:"tainted_args"`
	Description    string `yaml:"description,omitempty"`
}

// Registry is the configured set of known sinks, keyed by name.
type Registry map[string]Sink

// defaultRegistry covers the handful of classic libc sinks a native-code
// sanitizer crash is likely to bottom out at.
func defaultRegistry() Registry {
	return Registry{
		"strcpy":  {Name: "strcpy", TaintedArgs: []int{0, 1}, Description: "unbounded string copy"},
		"sprintf": {Name: "sprintf", TaintedArgs: []int{0}, Description: "unbounded formatted write"},
		"strcat":  {Name: "strcat", TaintedArgs: []int{0, 1}, Description: "unbounded string concatenation"},
		"gets":    {Name: "gets", TaintedArgs: []int{0}, Description: "unbounded stdin read"},
		"memcpy":  {Name: "memcpy", TaintedArgs: []int{0, 1}, Description: "unchecked-length memory copy"},
		"system":  {Name: "system", TaintedArgs: []int{0}, Description: "shell command execution"},
	}
}

// LoadSinkRegistry reads a YAML sink registry from path, merging it over
// the built-in defaults so a run can extend or override individual
// entries without restating the whole list. An empty path returns the
// defaults unchanged.
func LoadSinkRegistry(path string) (Registry, error) {
	reg := defaultRegistry()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sink registry %s: %w", path, err)
	}

	var sinks []Sink
	if err := yaml.Unmarshal(data, &sinks); err != nil {
		return nil, fmt.Errorf("parse sink registry %s: %w", path, err)
	}
	for _, s := range sinks {
		reg[s.Name] = s
	}
	return reg, nil
}
