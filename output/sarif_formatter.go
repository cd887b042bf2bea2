package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	sarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/mxu49/taintwalk/internal/traversal"
)

// SARIFFormatter formats a traversal result as SARIF 2.1.0, one result per
// tainted function on a chain into the sink.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a SARIF formatter writing to stdout.
func NewSARIFFormatter() *SARIFFormatter {
	return &SARIFFormatter{writer: os.Stdout}
}

// NewSARIFFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewSARIFFormatterWithWriter(w io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: w}
}

const sarifRuleID = "tainted-call-chain"

// Format writes result as a SARIF report. No source file or line is
// attached to a finding: every result carries a physical location whose
// artifact URI is "<binary>#<function>" and whose region starts at line 1.
func (f *SARIFFormatter) Format(binary string, result *traversal.Result) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("taintwalk", "https://github.com/mxu49/taintwalk")
	run.AddRule(sarifRuleID).
		WithDescription("Function reachable on a call chain into the sink carries tainted data").
		WithName("TaintedCallChain")

	for _, chain := range result.Chains {
		f.addChainResults(run, binary, chain, result)
	}

	report.AddRun(run)

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (f *SARIFFormatter) addChainResults(run *sarif.Run, binary string, chain []string, result *traversal.Result) {
	for _, fn := range chain {
		entry, ok := result.Map[fn]
		if !ok {
			continue
		}
		locals := entry.SortedLocals()
		slots := entry.SortedSlots()
		if len(locals) == 0 && len(slots) == 0 {
			continue
		}

		message := fmt.Sprintf("%s carries tainted locals %v and slots %v on the way to %s", fn, locals, slots, result.Sink)

		sarifResult := run.CreateResultForRule(sarifRuleID).
			WithMessage(sarif.NewTextMessage(message))

		location := sarif.NewLocation().
			WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(binary + "#" + fn)).
					WithRegion(sarif.NewRegion().WithStartLine(1)),
			)
		sarifResult.AddLocation(location)
	}
}
