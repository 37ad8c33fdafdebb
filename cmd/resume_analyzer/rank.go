package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func newPredictRolesCmd(root *rootOptions) *cobra.Command {
	var skills string

	cmd := &cobra.Command{
		Use:   "predict-roles",
		Short: "Rank job roles for a set of canonical skills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, err := root.analyzer(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), "", analyzer.Roles().Rank(splitList(skills)))
		},
	}

	cmd.Flags().StringVarP(&skills, "skills", "s", "", "Comma separated canonical skills")
	_ = cmd.MarkFlagRequired("skills")
	return cmd
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	var profileSkills, resumeSkills, experience, education string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute an ATS breakdown from already known skills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, err := root.analyzer(cmd.Context())
			if err != nil {
				return err
			}
			ats := analyzer.Scorer().Score(ranking.ScoreInput{
				ProfileSkills: profileSkills,
				ResumeSkills:  splitList(resumeSkills),
				Experience:    types.Experience(experience),
				Education:     education,
			})
			return writeJSON(cmd.OutOrStdout(), "", ats)
		},
	}

	cmd.Flags().StringVarP(&profileSkills, "skills", "s", "", "Comma separated profile skills")
	cmd.Flags().StringVarP(&resumeSkills, "resume-skills", "r", "", "Comma separated canonical skills found in the resume")
	cmd.Flags().StringVarP(&experience, "experience", "e", "", "Years of experience")
	cmd.Flags().StringVar(&education, "education", "", "Highest education, free text")
	return cmd
}

// splitList splits a comma separated list, dropping blanks and lower-casing.
func splitList(list string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
