// Package traversal drives the backward and forward taint sweeps over
// every call chain from a backtrace-seeded call graph into a sink,
// mirroring the original crash-triage tool's Graph::Traversal /
// Graph::visitPath control flow.
package traversal

import (
	"context"

	"github.com/mxu49/taintwalk/internal/extract"
	"github.com/mxu49/taintwalk/internal/locate"
	"github.com/mxu49/taintwalk/internal/srcxml"
)

// StatementSource resolves a function name to its statement elements. A
// nil slice with a nil error means the function could not be resolved
// (absent symbol, missing line info) and should be skipped, not treated
// as a fatal error.
type StatementSource interface {
	Statements(ctx context.Context, function string) ([]srcxml.CodeElement, error)
}

// BinarySource resolves function source by locating it in a binary via
// nm/addr2line, slicing and preprocessing its body, and running it
// through srcml — the full external-tool pipeline a real run drives.
type BinarySource struct {
	Locator  *locate.Locator
	Runner   extract.Runner
	Language string
}

// NewBinarySource returns a BinarySource for binary, using real
// subprocess collaborators for nm/addr2line/srcml.
func NewBinarySource(binary, language string) *BinarySource {
	if language == "" {
		language = "C++"
	}
	return &BinarySource{
		Locator:  locate.NewLocator(binary),
		Runner:   extract.ExecRunner{},
		Language: language,
	}
}

// Statements resolves function's location, slices and preprocesses its
// source, and parses the resulting srcml XML into statement elements.
func (s *BinarySource) Statements(ctx context.Context, function string) ([]srcxml.CodeElement, error) {
	loc, err := s.Locator.Locate(ctx, function)
	if err != nil {
		return nil, err
	}
	if loc.IsZero() {
		return nil, nil
	}

	raw, err := extract.ReadLines(loc.File, loc.StartLine, loc.EndLine)
	if err != nil {
		return nil, err
	}
	raw = extract.StripLeadingBraces(raw)
	code := extract.PreprocessCode(raw)

	xmlStr, err := extract.ToXML(ctx, s.Runner, code, s.Language)
	if err != nil {
		return nil, err
	}
	return srcxml.ParseElements(xmlStr)
}
