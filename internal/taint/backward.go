package taint

import "github.com/mxu49/taintwalk/internal/srcxml"

// backward walks stmts in reverse (sink-end first), growing tainted from
// whatever it already knows about this function's slots relative to
// previousFunction — the callee one hop closer to the sink on this chain.
//
// Until the call into previousFunction is reached, nothing is tracked:
// only the call itself and the statements before it in source order can
// possibly carry taint back from the sink. forceTrack skips
// this gate entirely and tracks the whole function (used for
// worklist-drained functions that aren't part of a known chain hop).
func (e *Engine) backward(entry *Entry, stmts []srcxml.CodeElement, previousFunction string, prevSlots map[string]struct{}, tainted map[string]struct{}, forceTrack bool) {
	tracking := forceTrack
	parameterIndex := 0

	for i := len(stmts) - 1; i >= 0; i-- {
		el := stmts[i]

		if !tracking {
			if el.Type == "call" {
				callee := callNamePrefix(el.Content)
				if callee == previousFunction || contains(e.Definitions[callee], previousFunction) {
					tracking = true
				}
			}
			if !tracking {
				continue
			}
			// Tracking just started on this element — the call into
			// previousFunction is itself the edge taint crosses, so it is
			// processed below rather than skipped.
		}

		switch el.Type {
		case "decl", "expr":
			vars := srcxml.ExtractVariablesFromElement(el.Node)
			if anyTainted(vars, tainted) {
				for _, v := range vars {
					if !isNumericLiteral(v) {
						tainted[v] = struct{}{}
					}
				}
			}

		case "call":
			callee := callNamePrefix(el.Content)
			args := srcxml.ExtractFromCall(el.Content)
			if callee == previousFunction {
				for slot := range prevSlots {
					if idx, ok := ParamIndex(slot); ok {
						if idx >= 0 && idx < len(args) && !isNumericLiteral(args[idx]) {
							tainted[args[idx]] = struct{}{}
						}
					} else if IsReturnSlot(slot) {
						for _, v := range args {
							if !isNumericLiteral(v) {
								tainted[v] = struct{}{}
							}
						}
					}
				}
			} else {
				for _, v := range args {
					if !isNumericLiteral(v) {
						tainted[v] = struct{}{}
					}
				}
			}

		case "return":
			vars := srcxml.ExtractVariablesFromElement(el.Node)
			if entry.HasSlot(WildcardReturn) {
				for _, v := range vars {
					if !isNumericLiteral(v) {
						tainted[v] = struct{}{}
					}
				}
			}
			for idx, v := range vars {
				if _, ok := tainted[v]; ok {
					entry.Slots[ReturnSlot(idx)] = struct{}{}
				}
			}

		case "parameter":
			for _, v := range splitParameter(el.Content) {
				idx := parameterIndex
				parameterIndex++
				if _, ok := tainted[v]; ok {
					entry.Slots[ParamSlot(idx)] = struct{}{}
				}
			}
		}
	}
}
