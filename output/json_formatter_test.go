package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mxu49/taintwalk/internal/taint"
	"github.com/mxu49/taintwalk/internal/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *traversal.Result {
	m := taint.NewMap()
	m.Entry("combineData").Locals["userInput"] = struct{}{}
	m.Entry("combineData").Locals["p"] = struct{}{}
	m.Entry("strcpy").Slots["#0"] = struct{}{}

	return &traversal.Result{
		Sink:   "strcpy",
		Chains: [][]string{{"main", "combineData", "strcpy"}},
		Map:    m,
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatterWithWriter(&buf)

	require.NoError(t, f.Format(sampleResult(), ScanInfo{Binary: "./vuln", Version: "test"}))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "taintwalk", out.Tool.Name)
	assert.Equal(t, "strcpy", out.Scan.Sink)
	require.Len(t, out.Chains, 1)
	assert.Equal(t, []string{"main", "combineData", "strcpy"}, out.Chains[0].Functions)
	assert.Equal(t, 1, out.Summary.TotalChains)

	var combineData *JSONFunction
	for i := range out.Chains[0].Findings {
		if out.Chains[0].Findings[i].Name == "combineData" {
			combineData = &out.Chains[0].Findings[i]
		}
	}
	require.NotNil(t, combineData)
	assert.Contains(t, combineData.Locals, "userInput")
	assert.Contains(t, combineData.Locals, "p")
}

func TestJSONFormatter_DiagnosticWithNoChains(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatterWithWriter(&buf)

	result := &traversal.Result{Sink: "strcpy", Diagnostic: `sink "strcpy" not found in call graph`}
	require.NoError(t, f.Format(result, ScanInfo{}))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotEmpty(t, out.Diagnostic)
	assert.Empty(t, out.Chains)
}
