package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

type analyzeOptions struct {
	file       string
	skills     string
	experience string
	education  string
	out        string
	verbose    bool
	debug      bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume against a candidate profile",
		Long:  "Extract a resume's text, detect skills with provenance, predict roles and compute the ATS score. Prints the AnalysisResult JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Resume path (.pdf, .txt, .docx, .html) or s3:// URI")
	cmd.Flags().StringVarP(&opts.skills, "skills", "s", "", "Comma separated profile skills")
	cmd.Flags().StringVarP(&opts.experience, "experience", "e", "", "Years of experience")
	cmd.Flags().StringVar(&opts.education, "education", "", "Highest education, free text")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Dump the effective config to stderr")

	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	stderr := cmd.ErrOrStderr()
	if opts.debug {
		spew.Fdump(stderr, root.cfg)
	}

	var extra []pipeline.Option
	printer := observability.NewPrinter(stderr)
	if opts.verbose {
		extra = append(extra, pipeline.WithProgress(printer.Progress()))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), root.cfg.ExtractTimeoutDuration())
	defer cancel()

	analyzer, err := root.analyzer(ctx, extra...)
	if err != nil {
		return err
	}

	result := analyzer.AnalyzeContext(ctx, opts.file, types.CandidateProfile{
		Skills:          opts.skills,
		ExperienceYears: types.Experience(opts.experience),
		Education:       opts.education,
	})

	if opts.verbose {
		printer.PrintAnalysis(result)
	}

	if err := checkSchema(stderr, schemas.ValidateAnalysisResult(result)); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), opts.out, result)
}

// checkSchema turns a validation failure into an error and a schema load problem
// into a warning.
func checkSchema(warn io.Writer, err error) error {
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	case errors.As(err, &schemaLoadErr):
		_, _ = fmt.Fprintf(warn, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
	default:
		_, _ = fmt.Fprintf(warn, "Warning: Could not validate output against schema: %v\n", err)
	}
	return nil
}
