package output

import (
	"bytes"
	"testing"

	"github.com/mxu49/taintwalk/internal/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter_WritesChainAndTaint(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatterWithWriter(&buf, nil)

	require.NoError(t, f.Format(sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "main -> combineData -> strcpy")
	assert.Contains(t, out, "userInput")
	assert.Contains(t, out, "Summary:")
}

func TestTextFormatter_DiagnosticShortCircuits(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatterWithWriter(&buf, nil)

	result := &traversal.Result{Sink: "strcpy", Diagnostic: `sink "strcpy" not found in call graph`}
	require.NoError(t, f.Format(result))

	assert.Contains(t, buf.String(), "not found in call graph")
}

func TestTextFormatter_NoChainsFound(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatterWithWriter(&buf, nil)

	result := &traversal.Result{Sink: "strcpy"}
	require.NoError(t, f.Format(result))

	assert.Contains(t, buf.String(), "no call chain into the sink was found")
}
