// Package batch scores many candidates in one run with bounded concurrency.
package batch

import (
	"context"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// Options controls a batch run.
type Options struct {
	Concurrency int                        // resumes analyzed at once
	Timeout     time.Duration              // per resume; 0 means no limit
	OnItem      func(item types.BatchItem) // called from worker goroutines
}

// Score analyzes every candidate and returns the report with items in input order.
// A candidate without a resume on file is reported with HasResume false and no score.
// One bad resume never aborts the run; only ctx ending does.
func Score(ctx context.Context, analyzer *pipeline.Analyzer, candidates []types.Candidate, opts Options) (*types.BatchReport, error) {
	report := &types.BatchReport{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		Items:     make([]types.BatchItem, len(candidates)),
		Scores:    make(map[string]int),
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	slog.Info("batch started",
		slog.String("run_id", report.RunID.String()),
		slog.Int("candidates", len(candidates)),
		slog.Int("concurrency", limit))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, c := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			item := scoreOne(gCtx, analyzer, c, opts.Timeout)
			report.Items[i] = item
			if opts.OnItem != nil {
				opts.OnItem(item)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Summary = summarize(report.Items)
	for _, item := range report.Items {
		if item.ATSScore != nil {
			report.Scores[item.CandidateID] = *item.ATSScore
		}
	}

	slog.Info("batch finished",
		slog.String("run_id", report.RunID.String()),
		slog.Int("scored", report.Summary.Scored),
		slog.Int("skipped", report.Summary.Skipped))

	return report, nil
}

func scoreOne(ctx context.Context, analyzer *pipeline.Analyzer, c types.Candidate, timeout time.Duration) types.BatchItem {
	item := types.BatchItem{
		CandidateID: c.ID,
		Name:        c.Name,
		Resume:      c.Resume,
		HasResume:   hasResume(analyzer, c.Resume),
	}
	if !item.HasResume {
		slog.Debug("no resume on file", slog.String("candidate_id", c.ID))
		return item
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result := analyzer.AnalyzeContext(ctx, c.Resume, c.CandidateProfile)
	score := result.ATS.Score
	item.ATSScore = &score
	item.TextLength = result.TextLength
	item.PredictedRoles = result.PredictedRoles
	item.MissingSkills = result.ATS.MissingSkills
	return item
}

// hasResume mirrors the listing rule: a local resume counts only if the file exists.
func hasResume(analyzer *pipeline.Analyzer, location string) bool {
	if location == "" {
		return false
	}
	if analyzer.IsRemote(location) {
		return true
	}
	info, err := os.Stat(location)
	return err == nil && !info.IsDir()
}

func summarize(items []types.BatchItem) types.BatchSummary {
	summary := types.BatchSummary{Total: len(items)}
	total := 0
	for _, item := range items {
		if item.ATSScore == nil {
			summary.Skipped++
			continue
		}
		summary.Scored++
		total += *item.ATSScore
	}
	if summary.Scored > 0 {
		summary.MeanScore = math.Round(float64(total)/float64(summary.Scored)*100) / 100
	}
	return summary
}
