package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

func newExtractTextCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "extract-text",
		Short: "Print the plain text extracted from a resume",
		Long:  "Extract plain text from a PDF, TXT, DOCX or HTML resume. The text goes to stdout, the format and outcome to stderr.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.cfg.ExtractTimeoutDuration())
			defer cancel()

			res := ingestion.ExtractFileContext(ctx, file)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "format: %s, reason: %s, characters: %d\n",
				orDash(string(res.Format)), res.Reason, len([]rune(res.Text)))
			_, err := fmt.Fprint(cmd.OutOrStdout(), res.Text)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Resume path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type skillsOutput struct {
	Skills     []string            `json:"skills"`
	Provenance map[string][]string `json:"provenance"`
}

func newExtractSkillsCmd(root *rootOptions) *cobra.Command {
	var file, text string

	cmd := &cobra.Command{
		Use:   "extract-skills",
		Short: "Detect skills in a resume with provenance snippets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (file == "") == (text == "") {
				return fmt.Errorf("exactly one of --file or --text is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), root.cfg.ExtractTimeoutDuration())
			defer cancel()

			analyzer, err := root.analyzer(ctx)
			if err != nil {
				return err
			}
			if file != "" {
				res := ingestion.ExtractFileContext(ctx, file)
				if !res.OK() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: no text extracted (%s)\n", res.Reason)
				}
				text = res.Text
			}

			skills, occ := analyzer.Matcher().ExtractSkills(text, analyzer.ContextChars())
			return writeJSON(cmd.OutOrStdout(), "", skillsOutput{Skills: skills, Provenance: occ})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Resume path")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Resume text given inline")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
