package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/chainscript/ride/internal/audit"
	"github.com/chainscript/ride/internal/config"
	"github.com/chainscript/ride/internal/diag"
	"github.com/chainscript/ride/internal/docfmt"
	"github.com/chainscript/ride/internal/domain"
	"github.com/chainscript/ride/internal/evalenv"
	"github.com/chainscript/ride/internal/evaluator"
	"github.com/chainscript/ride/internal/resolver"
)

// document is the top-level shape of a --doc file: an expression and an
// optional domain fixture, in either YAML or JSON (config.HasDocumentExt
// recognizes both extensions; yaml.v3 parses both).
type document struct {
	Expr   docfmt.Node     `yaml:"expr"`
	Domain *docfmt.Fixture `yaml:"domain"`
}

// outputFormat is a pflag.Value restricting --format to a closed set of
// choices, rather than accepting any string.
type outputFormat string

const (
	formatAuto outputFormat = "auto"
	formatTSV  outputFormat = "tsv"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }
func (f *outputFormat) Type() string   { return "format" }
func (f *outputFormat) Set(v string) error {
	switch outputFormat(v) {
	case formatAuto, formatTSV:
		*f = outputFormat(v)
		return nil
	default:
		return fmt.Errorf("invalid format %q (want %q or %q)", v, formatAuto, formatTSV)
	}
}

func newEvalCmd() *cobra.Command {
	var docPath, auditPath string
	format := formatAuto

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Resolve and evaluate an expression document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, docPath, auditPath, format)
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "path to a YAML or JSON expression document (required)")
	cmd.Flags().StringVar(&auditPath, "audit", "", "optional path to a SQLite audit log")
	cmd.Flags().Var(&format, "format", `output format: "auto" or "tsv"`)
	cmd.MarkFlagRequired("doc")
	return cmd
}

func runEval(cmd *cobra.Command, docPath, auditPath string, format outputFormat) error {
	if !config.HasDocumentExt(docPath) {
		return fmt.Errorf("%s: unrecognized document extension", docPath)
	}

	raw, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", docPath, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", docPath, err)
	}

	expr, err := docfmt.Build(doc.Expr)
	if err != nil {
		return fmt.Errorf("building expression: %w", err)
	}

	var dom domain.Domain = domain.Static{}
	if doc.Domain != nil {
		fixture, err := docfmt.BuildDomain(*doc.Domain)
		if err != nil {
			return fmt.Errorf("building domain fixture: %w", err)
		}
		dom = fixture
	}

	requestID := uuid.New().String()

	var log *audit.Log
	if auditPath != "" {
		log, err = audit.Open(auditPath)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer log.Close()
	}

	resolvedType, derr := resolver.Resolve(evalenv.Empty, expr)
	if derr != nil {
		recordOutcome(log, requestID, "", "", derr)
		return derr
	}

	ctx := evaluator.Context{Domain: dom, Verify: domain.Ed25519Verifier{}}
	value, derr := evaluator.Eval(ctx, evalenv.Empty, expr)
	if derr != nil {
		recordOutcome(log, requestID, resolvedType.String(), "", derr)
		return derr
	}

	recordOutcome(log, requestID, resolvedType.String(), value.Inspect(), nil)
	printResult(cmd, requestID, resolvedType.String(), value.Inspect(), format)
	return nil
}

func recordOutcome(log *audit.Log, requestID, resultType, result string, err *diag.Diagnostic) {
	if log == nil {
		return
	}
	var rec audit.Record
	rec.RequestID = requestID
	rec.ResultType = resultType
	rec.Result = result
	if err != nil {
		rec.Err = err
	}
	// Audit failures are logged to stderr but never fail the eval itself —
	// the audit log is diagnostic tooling, not part of the evaluation result.
	if werr := log.Write(context.Background(), rec); werr != nil {
		fmt.Fprintf(os.Stderr, "ridectl: audit write failed: %s\n", werr)
	}
}

func printResult(cmd *cobra.Command, requestID, resultType, result string, format outputFormat) {
	out := cmd.OutOrStdout()
	pretty := format == formatAuto
	if pretty {
		if f, ok := out.(*os.File); ok {
			pretty = isatty.IsTerminal(f.Fd())
		} else {
			pretty = false
		}
	}
	if pretty {
		fmt.Fprintf(out, "request %s\n  type:   %s\n  result: %s\n", requestID, resultType, result)
		return
	}
	fmt.Fprintf(out, "%s\t%s\t%s\n", requestID, resultType, result)
}
