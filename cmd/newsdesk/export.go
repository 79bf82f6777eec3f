package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimson-sun/newsdesk/internal/output"
	"github.com/crimson-sun/newsdesk/internal/output/file"
	"github.com/crimson-sun/newsdesk/internal/output/multi"
	"github.com/crimson-sun/newsdesk/internal/output/stdout"
)

type exportFlags struct {
	out       string
	verbosity string
	pretty    bool
	maxSize   int64
	tee       bool
	appendOut bool
}

func newExportCmd(a *app) *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the enriched dataset as NDJSON",
		Long: `Runs the pipeline once and writes one JSON record per line, in timestamp
order, to stdout or to --out. Warnings go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output file (default: stdout, or output.path from config)")
	cmd.Flags().StringVar(&f.verbosity, "verbosity", "", "minimal, standard or full (overrides config)")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Indent stdout output")
	cmd.Flags().Int64Var(&f.maxSize, "max-size", 0, "Rotate the output file at this many bytes (0 disables)")
	cmd.Flags().BoolVar(&f.tee, "tee", false, "Also write to stdout when --out is set")
	cmd.Flags().BoolVar(&f.appendOut, "append", false, "Append to --out instead of replacing it")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, f exportFlags) error {
	if !cmd.Flags().Changed("verbosity") {
		f.verbosity = a.cfg.Output.Verbosity
	}
	if !cmd.Flags().Changed("out") {
		f.out = a.cfg.Output.Path
	}
	if !cmd.Flags().Changed("pretty") {
		f.pretty = a.cfg.Output.Pretty
	}
	if !cmd.Flags().Changed("max-size") {
		f.maxSize = a.cfg.Output.MaxSize
	}
	if f.maxSize < 0 {
		return errors.New("--max-size must not be negative")
	}
	verbosity := output.ParseVerbosity(f.verbosity)

	out, err := openOutput(cmd, f, verbosity)
	if err != nil {
		return err
	}

	res, err := a.newPipeline(nil).Export(cmd.Context(), out)
	closeErr := out.Close()
	for _, n := range res.Report.Notices {
		fmt.Fprintln(cmd.ErrOrStderr(), n.Message)
	}
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("close output: %w", closeErr)
	}
	if res.Report.Err != nil {
		return res.Report.Err
	}

	a.logger.Info("export finished",
		zap.String("run_id", res.Report.RunID),
		zap.Int("records", len(res.Records)),
		zap.String("out", f.out),
	)
	return nil
}

func openOutput(cmd *cobra.Command, f exportFlags, verbosity output.Verbosity) (output.Output, error) {
	std := stdout.NewWriter(cmd.OutOrStdout(), verbosity, f.pretty)
	if f.out == "" {
		return std, nil
	}

	opts := []file.Option{file.WithMaxSize(f.maxSize)}
	if !f.appendOut {
		opts = append(opts, file.WithTruncate())
	}
	fo, err := file.New(f.out, verbosity, opts...)
	if err != nil {
		return nil, err
	}
	if f.tee {
		return multi.New(fo, std), nil
	}
	return fo, nil
}
