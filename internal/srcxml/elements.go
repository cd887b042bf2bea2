package srcxml

import "strings"

// CodeElement is one statement-level unit the taint engine walks: a
// declaration, parameter, return, call, or operator expression, tagged
// with the function it was found in. Node retains the parsed subtree so
// callers can extract variables/calls without re-running srcml.
type CodeElement struct {
	Type         string
	Content      string
	FunctionName string
	Node         *Element
}

var ignoredTags = map[string]bool{
	"comment":       true,
	"function_decl": true,
	"type":          true,
}

func isIgnoredElement(tag string) bool {
	return ignoredTags[tag]
}

var expressionOperators = []string{"=", "==", "<", ">", "+", "-", "*", "/"}

func isValidExpression(tag, content string) bool {
	switch tag {
	case "decl", "parameter", "return", "call":
		return true
	case "expr":
		for _, op := range expressionOperators {
			if strings.Contains(content, op) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ParseElements parses a function's srcml fragment and returns every
// statement-level CodeElement it contains, in source order. Declarations,
// parameters, returns, and taint-relevant calls/expressions are kept;
// comments, forward declarations, and bare type nodes are skipped
// entirely (including their subtrees).
func ParseElements(doc string) ([]CodeElement, error) {
	root, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	var out []CodeElement
	walkForElements(root, "", &out)
	return out, nil
}

func walkForElements(el *Element, functionContext string, out *[]CodeElement) {
	for _, child := range el.Children() {
		if isIgnoredElement(child.Tag) {
			continue
		}

		ctx := functionContext
		if child.Tag == "function" {
			if name := child.FindChild("name"); name != nil {
				ctx = strings.TrimSpace(name.Text())
			}
		}

		walkForElements(child, ctx, out)

		content := child.Text()
		if isValidExpression(child.Tag, content) {
			if typeChild := child.FindChild("type"); typeChild != nil {
				child.RemoveChild(typeChild)
				content = child.Text()
			}
			*out = append(*out, CodeElement{
				Type:         child.Tag,
				Content:      strings.TrimSpace(content),
				FunctionName: ctx,
				Node:         child,
			})
		}
	}
}
