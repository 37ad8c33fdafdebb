package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/objectstore"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// rootOptions is shared by every subcommand; cfg is filled in before any RunE.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "resume_analyzer",
		Short:         "Resume analysis engine",
		Long:          "Extracts resume text, detects skills, predicts roles and computes ATS scores against a candidate profile.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON or YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newExtractTextCmd(opts),
		newExtractSkillsCmd(opts),
		newPredictRolesCmd(opts),
		newScoreCmd(opts),
		newBatchCmd(opts),
		newWorkerCmd(opts),
	)
	return cmd
}

// load resolves the effective config: file, then environment, then defaults, with
// logging flags taking precedence over all three.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg := &config.Config{}
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return err
	}
	if _, err := logging.Setup(merged.LogLevel, merged.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	o.cfg = merged
	return nil
}

// analyzer builds the configured analyzer, with object storage when S3 is configured
// and URL downloads when enabled.
func (o *rootOptions) analyzer(ctx context.Context, extra ...pipeline.Option) (*pipeline.Analyzer, error) {
	if o.cfg.HTTP.Enabled {
		client := fetch.NewClient(&fetch.Options{
			Timeout:   o.cfg.ExtractTimeoutDuration(),
			UserAgent: o.cfg.HTTP.UserAgent,
			MaxBytes:  fetch.DefaultMaxBytes,
		})
		extra = append([]pipeline.Option{pipeline.WithFetcher(client)}, extra...)
	}

	s3 := o.cfg.S3
	if s3.Bucket != "" || s3.Endpoint != "" || s3.AccessKey != "" {
		client, err := objectstore.New(ctx, objectstore.Config{
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		extra = append([]pipeline.Option{pipeline.WithFetcher(client)}, extra...)
	}
	a, err := o.cfg.Analyzer(extra...)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis tables: %w", err)
	}
	return a, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err = w.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
