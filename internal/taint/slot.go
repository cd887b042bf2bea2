// Package taint implements the backward/forward inter-procedural taint
// sweep: given a function's statement elements and the taint already
// known about its neighbor in the call chain, it grows the set of
// tainted locals and tainted parameter/return slots for that function.
package taint

import (
	"strconv"
	"strings"
)

// WildcardReturn marks every return statement of a function as tainted,
// used when a callee's return value is assumed tainted without knowing
// which particular return expression produced it (e.g. a zero-argument
// call whose result is conservatively treated as tainted).
const WildcardReturn = "$*"

// ParamSlot names the zero-indexed nth parameter slot: "#0", "#1", ...
func ParamSlot(index int) string {
	return "#" + strconv.Itoa(index)
}

// ReturnSlot names the nth tainted return expression: "$0", "$1", ...
func ReturnSlot(index int) string {
	return "$" + strconv.Itoa(index)
}

// ParamIndex parses a "#N" slot into its index. ok is false for anything
// that isn't a parameter slot.
func ParamIndex(slot string) (int, bool) {
	if !strings.HasPrefix(slot, "#") {
		return 0, false
	}
	n, err := strconv.Atoi(slot[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsReturnSlot reports whether slot names a return position ("$N" or the
// "$*" wildcard).
func IsReturnSlot(slot string) bool {
	return strings.HasPrefix(slot, "$")
}
