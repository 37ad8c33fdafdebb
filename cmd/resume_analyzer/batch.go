package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/batch"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

type batchOptions struct {
	manifest    string
	recruiterID int64
	status      string
	out         string
	concurrency int
	databaseURL string
	verbose     bool
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score many candidates in one run",
		Long:  "Score every candidate of a manifest file, or every applicant to a recruiter's postings from the database, and print a BatchReport JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "JSON or YAML candidate manifest")
	cmd.Flags().Int64Var(&opts.recruiterID, "recruiter-id", 0, "Score the applicants to this recruiter's postings")
	cmd.Flags().StringVar(&opts.status, "status", "", "Only applications with this status (e.g. shortlisted)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Resumes analyzed at once (default from config)")
	cmd.Flags().StringVar(&opts.databaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print a summary to stderr")

	cmd.MarkFlagsMutuallyExclusive("manifest", "recruiter-id")
	cmd.MarkFlagsOneRequired("manifest", "recruiter-id")
	return cmd
}

func runBatch(cmd *cobra.Command, root *rootOptions, opts *batchOptions) error {
	ctx := cmd.Context()

	var candidates []types.Candidate
	if opts.manifest != "" {
		loaded, err := batch.LoadManifest(opts.manifest)
		if err != nil {
			return err
		}
		candidates = loaded
	} else {
		databaseURL := opts.databaseURL
		if databaseURL == "" {
			databaseURL = root.cfg.DatabaseURL
		}
		if databaseURL == "" {
			return fmt.Errorf("DATABASE_URL required when using --recruiter-id")
		}

		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		candidates, err = database.ListCandidates(ctx, db.CandidateFilter{
			RecruiterID: opts.recruiterID,
			Status:      opts.status,
			UploadDir:   root.cfg.UploadDir,
		})
		if err != nil {
			return err
		}
	}

	analyzer, err := root.analyzer(ctx)
	if err != nil {
		return err
	}

	concurrency := opts.concurrency
	if concurrency <= 0 {
		concurrency = root.cfg.Concurrency
	}
	report, err := batch.Score(ctx, analyzer, candidates, batch.Options{
		Concurrency: concurrency,
		Timeout:     root.cfg.ExtractTimeoutDuration(),
	})
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	if opts.verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintBatchReport(report)
	}
	if err := checkSchema(cmd.ErrOrStderr(), schemas.ValidateBatchReport(report)); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), opts.out, report)
}
