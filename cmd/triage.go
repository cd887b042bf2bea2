package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mxu49/taintwalk/internal/calltrace"
	"github.com/mxu49/taintwalk/internal/config"
	"github.com/mxu49/taintwalk/internal/traversal"
	"github.com/mxu49/taintwalk/output"
	"github.com/spf13/cobra"
)

var triageFlags struct {
	binary      string
	asan        string
	callTrace   string
	whitelist   string
	definitions string
	pollution   string
	sinkConfig  string
	sink        string
	outputFmt   string
	language    string
}

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Walk tainted data from a crash sink back to the backtrace's roots",
	Long: `triage builds a call graph from a sanitizer backtrace (and, if given, a
recorded runtime call-trace log), seeds it with known-tainted locals and
slots, then sweeps every call chain into the sink backward and forward to
report which functions and parameter/return slots carry taint.`,
	RunE: runTriage,
}

func init() {
	rootCmd.AddCommand(triageCmd)

	triageCmd.Flags().StringVar(&triageFlags.binary, "binary", "", "Path to the compiled binary under triage (required)")
	triageCmd.Flags().StringVar(&triageFlags.asan, "asan", "", "Path to the sanitizer backtrace text file (required)")
	triageCmd.Flags().StringVar(&triageFlags.callTrace, "call-trace-log", "", "Path to a recorded runtime call-trace log (caller callee per line)")
	triageCmd.Flags().StringVar(&triageFlags.whitelist, "whitelist", "", "Path to a function-name whitelist filtering the call-trace log")
	triageCmd.Flags().StringVar(&triageFlags.definitions, "definitions", "", "Path to a JSON map of sink name to its wrapper/interceptor aliases")
	triageCmd.Flags().StringVar(&triageFlags.pollution, "pollution", "", "Path to a JSON map of function name to its seed-tainted locals/slots")
	triageCmd.Flags().StringVar(&triageFlags.sinkConfig, "sink-registry", "", "Path to a YAML sink registry overriding the built-in defaults")
	triageCmd.Flags().StringVar(&triageFlags.sink, "sink", config.DefaultSink, "Name of the sink function to triage")
	triageCmd.Flags().StringVar(&triageFlags.outputFmt, "output", "text", "Output format: text, json, or sarif")
	triageCmd.Flags().StringVar(&triageFlags.language, "language", "C++", "Source language passed to srcml")

	_ = triageCmd.MarkFlagRequired("binary")
	_ = triageCmd.MarkFlagRequired("asan")
}

func runTriage(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	verbose, _ := cmd.Flags().GetBool("verbose")
	verbosity := output.VerbosityDefault
	if verbose {
		verbosity = output.VerbosityVerbose
	}
	logger := output.NewLogger(verbosity)

	registry, err := config.LoadSinkRegistry(triageFlags.sinkConfig)
	if err != nil {
		return fmt.Errorf("load sink registry: %w", err)
	}
	if _, ok := registry[triageFlags.sink]; !ok {
		logger.Warning("sink %q is not in the registry; analyzing it anyway", triageFlags.sink)
	}

	graph := calltrace.NewGraph()

	logger.Progress("parsing backtrace %s", triageFlags.asan)
	if err := graph.ParseASanOutput(triageFlags.asan); err != nil {
		return fmt.Errorf("parse backtrace: %w", err)
	}
	graph.AddBacktrace()

	if triageFlags.callTrace != "" {
		whitelist := map[string]struct{}{}
		if triageFlags.whitelist != "" {
			whitelist, err = config.LoadWhitelist(triageFlags.whitelist)
			if err != nil {
				return fmt.Errorf("load whitelist: %w", err)
			}
		}
		logger.Progress("replaying call-trace log %s", triageFlags.callTrace)
		if err := config.ReplayCallTraceLog(triageFlags.callTrace, whitelist, graph); err != nil {
			return fmt.Errorf("replay call-trace log: %w", err)
		}
	}

	graph.RemoveInterceptors()

	if triageFlags.definitions != "" {
		defs, err := config.LoadDefinitions(triageFlags.definitions)
		if err != nil {
			return fmt.Errorf("load definitions: %w", err)
		}
		graph.Definitions = defs
	}

	if triageFlags.pollution != "" {
		pollution, err := config.LoadPollution(triageFlags.pollution)
		if err != nil {
			return fmt.Errorf("load pollution: %w", err)
		}
		graph.Pollution = pollution
	}

	source := traversal.NewBinarySource(triageFlags.binary, triageFlags.language)
	driver := traversal.NewDriver(graph, source, triageFlags.sink, graph.Definitions)

	logger.Progress("sweeping call chains into %s", triageFlags.sink)
	result, err := driver.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run traversal: %w", err)
	}

	info := output.ScanInfo{Binary: triageFlags.binary, Version: Version, Duration: time.Since(start)}
	if err := writeTriageResult(result, info); err != nil {
		return fmt.Errorf("format output: %w", err)
	}

	osExit(int(output.DetermineExitCode(result, false)))
	return nil
}

// osExit allows tests to mock process exit.
var osExit = os.Exit

func writeTriageResult(result *traversal.Result, info output.ScanInfo) error {
	switch triageFlags.outputFmt {
	case "json":
		return output.NewJSONFormatter().Format(result, info)
	case "sarif":
		return output.NewSARIFFormatter().Format(info.Binary, result)
	default:
		return output.NewTextFormatter(output.NewLogger(output.VerbosityDefault)).Format(result)
	}
}
