package output

import "github.com/mxu49/taintwalk/internal/traversal"

// ExitCode represents the exit code for the CLI.
type ExitCode int

const (
	// ExitCodeSuccess indicates the sink was found and at least one chain
	// into it was enumerated (whether or not taint actually propagated
	// along any chain — "no taint reached the sink" is still a
	// successful, fully-analyzed run).
	ExitCodeSuccess ExitCode = 0

	// ExitCodeNoChains indicates the sink was not present in the call
	// graph, or no call chain into it could be enumerated.
	ExitCodeNoChains ExitCode = 1

	// ExitCodeError indicates a configuration or execution error occurred
	// before a result could be produced at all.
	ExitCodeError ExitCode = 2
)

// DetermineExitCode calculates the exit code for a completed run.
// hadErrors takes precedence over everything else; a non-empty
// Diagnostic (sink absent) or zero chains come next.
func DetermineExitCode(result *traversal.Result, hadErrors bool) ExitCode {
	if hadErrors {
		return ExitCodeError
	}
	if result == nil {
		return ExitCodeError
	}
	if result.Diagnostic != "" || len(result.Chains) == 0 {
		return ExitCodeNoChains
	}
	return ExitCodeSuccess
}
