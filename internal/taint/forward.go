package taint

import "github.com/mxu49/taintwalk/internal/srcxml"

// forward walks stmts in source order (sink-end last), growing tainted
// from the seed sources at the chain's root. Tracking starts true and
// stops the moment the call into previousFunction — the next hop toward
// the sink — is reached, since everything past that call is the
// callee's own concern. forceTrack disables the stop entirely and tracks
// the whole function, used for worklist-drained functions reached via a
// tainted call argument rather than a known chain hop.
func (e *Engine) forward(entry *Entry, stmts []srcxml.CodeElement, previousFunction string, tainted map[string]struct{}, forceTrack bool, push WorklistPush) {
	tracking := true
	var parameters []string

	for _, el := range stmts {
		stopAfterThis := false
		if !forceTrack {
			if !tracking {
				continue
			}
			if el.Type == "call" && callNamePrefix(el.Content) == previousFunction {
				// This call is the edge into the next hop: its own tainted
				// argument still gets recorded below, but nothing past it
				// belongs to this function's sweep.
				stopAfterThis = true
			}
		}

		switch el.Type {
		case "decl":
			vars := srcxml.ExtractVariablesFromElement(el.Node)
			if anyTainted(vars, tainted) {
				for _, v := range vars {
					if !isNumericLiteral(v) {
						tainted[v] = struct{}{}
					}
				}
				for _, call := range srcxml.ExtractFunctionFromElement(el.Node) {
					if push != nil {
						push(call.Name, call.HasArguments)
					}
					if !call.HasArguments {
						e.Map.Entry(call.Name).Slots[WildcardReturn] = struct{}{}
					}
				}
			}

		case "expr":
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
			if e.Graph == nil || e.Graph.HasNode(callee) {
				args := srcxml.ExtractFromCall(el.Content)
				for i, v := range args {
					if _, ok := tainted[v]; ok {
						e.Map.Entry(callee).Slots[ParamSlot(i)] = struct{}{}
						if push != nil {
							push(callee, true)
						}
						break
					}
				}
			}

		case "return":
			// A return statement has no forward effect of its own; its
			// variables only matter to the caller reading this function's
			// return slots, handled when the caller's own sweep runs.

		case "parameter":
			taintedIdx := map[int]bool{}
			for slot := range entry.Slots {
				if idx, ok := ParamIndex(slot); ok {
					taintedIdx[idx] = true
				}
			}
			for _, v := range splitParameter(el.Content) {
				parameters = append(parameters, v)
				if taintedIdx[len(parameters)-1] && !isNumericLiteral(v) {
					tainted[v] = struct{}{}
				}
			}
		}

		if stopAfterThis {
			tracking = false
		}
	}
}
