package srcxml

import (
	"sort"
	"strings"
)

var reservedWords = map[string]bool{
	"int": true, "char": true, "void": true, "NULL": true,
	"errno": true, "sizeof": true, "defined": true,
}

// ExtractVariablesFromXML returns every variable reference in a parsed
// fragment, equivalent to the XPath
//
//	//name[not(ancestor::type) and not(parent::call) and not(parent::macro)
//	      and not(preceding-sibling::operator[text()='->']) and not(child::index)]
//
// filtered of reserved keywords and tinydir/FUNC sentinel names, deduped
// and sorted.
func ExtractVariablesFromXML(fragment string) ([]string, error) {
	root, err := Parse(fragment)
	if err != nil {
		return nil, err
	}
	return ExtractVariablesFromElement(root), nil
}

// ExtractVariablesFromElement runs the same variable extraction as
// ExtractVariablesFromXML directly over an already-parsed subtree,
// avoiding a redundant reparse when the caller obtained the element from
// ParseElements.
func ExtractVariablesFromElement(root *Element) []string {
	seen := map[string]bool{}
	Walk(root, func(e *Element) {
		if e.Tag != "name" {
			return
		}
		if !isEligibleNameElement(e) {
			return
		}
		name := strings.TrimSpace(e.Text())
		if name == "" || reservedWords[name] {
			return
		}
		if strings.Contains(name, "TINYDIR_STRING") || strings.Contains(name, "_FUNC") {
			return
		}
		seen[name] = true
	})

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func isEligibleNameElement(e *Element) bool {
	if e.HasAncestorTag("type") {
		return false
	}
	if e.Parent != nil && (e.Parent.Tag == "call" || e.Parent.Tag == "macro") {
		return false
	}
	if e.FindChild("index") != nil {
		return false
	}
	if e.Parent == nil {
		return true
	}
	siblings := e.Parent.Children()
	for _, s := range siblings {
		if s == e {
			break
		}
		if s.Tag == "operator" && strings.TrimSpace(s.Text()) == "->" {
			return false
		}
	}
	return true
}

// CallRef names a call found while walking a fragment, and whether it was
// invoked with any arguments.
type CallRef struct {
	Name         string
	HasArguments bool
}

// ExtractFunctionFromXML returns every call/name pair in a fragment,
// equivalent to the XPath //call/name, each annotated with whether its
// sibling argument_list has any argument children.
func ExtractFunctionFromXML(fragment string) ([]CallRef, error) {
	root, err := Parse(fragment)
	if err != nil {
		return nil, err
	}
	return ExtractFunctionFromElement(root), nil
}

// ExtractFunctionFromElement runs the same call extraction as
// ExtractFunctionFromXML directly over an already-parsed subtree.
func ExtractFunctionFromElement(root *Element) []CallRef {
	var out []CallRef
	Walk(root, func(e *Element) {
		if e.Tag != "call" {
			return
		}
		name := e.FindChild("name")
		if name == nil {
			return
		}
		hasArgs := false
		if argList := e.FindChild("argument_list"); argList != nil {
			hasArgs = argList.FindChild("argument") != nil
		}
		out = append(out, CallRef{
			Name:         strings.TrimSpace(name.Text()),
			HasArguments: hasArgs,
		})
	})
	return out
}
