// Package pipeline analyzes resumes end to end: text extraction, skill detection,
// role prediction, ATS scoring and improvement suggestions.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Step names reported through ProgressCallback.
const (
	StepExtract = "extract_text"
	StepSkills  = "extract_skills"
	StepRoles   = "predict_roles"
	StepScore   = "score_ats"
)

// ProgressEvent describes a finished analysis step.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called after each analysis step.
type ProgressCallback func(event ProgressEvent)

// Fetcher retrieves resumes that do not live on the local filesystem.
type Fetcher interface {
	// Handles reports whether location is addressed to this fetcher.
	Handles(location string) bool
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Analyzer holds the compiled, read-only configuration of the analysis. One Analyzer
// can serve any number of concurrent calls; no call leaves state behind.
type Analyzer struct {
	matcher      *skills.Matcher
	roles        *ranking.RolePredictor
	scorer       *ranking.Scorer
	weights      types.Weights
	contextChars int
	fetchers     []Fetcher
	onProgress   ProgressCallback
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMatcher sets the compiled skill table.
func WithMatcher(m *skills.Matcher) Option {
	return func(a *Analyzer) { a.matcher = m }
}

// WithRoles sets the role definitions.
func WithRoles(table ranking.RoleTable) Option {
	return func(a *Analyzer) { a.roles = ranking.NewRolePredictor(table) }
}

// WithWeights sets the ATS component weights.
func WithWeights(w types.Weights) Option {
	return func(a *Analyzer) { a.weights = w }
}

// WithContextChars sets the provenance window on each side of a skill match.
func WithContextChars(n int) Option {
	return func(a *Analyzer) { a.contextChars = n }
}

// WithFetcher lets the analyzer read resumes from remote locations. Fetchers are
// tried in the order they were added.
func WithFetcher(f Fetcher) Option {
	return func(a *Analyzer) { a.fetchers = append(a.fetchers, f) }
}

// WithProgress registers a callback for step completion events.
func WithProgress(cb ProgressCallback) Option {
	return func(a *Analyzer) { a.onProgress = cb }
}

// New returns an Analyzer using the built-in tables unless overridden by opts.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		weights:      ranking.DefaultWeights(),
		contextChars: skills.DefaultContextChars,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.matcher == nil {
		a.matcher = skills.Default()
	}
	if a.roles == nil {
		a.roles = ranking.NewRolePredictor(ranking.DefaultRoles())
	}
	a.scorer = ranking.NewScorer(a.weights, a.matcher.Len())
	return a
}

// Matcher returns the compiled skill table.
func (a *Analyzer) Matcher() *skills.Matcher { return a.matcher }

// Roles returns the role predictor.
func (a *Analyzer) Roles() *ranking.RolePredictor { return a.roles }

// Scorer returns the ATS scorer.
func (a *Analyzer) Scorer() *ranking.Scorer { return a.scorer }

// ContextChars returns the provenance window size.
func (a *Analyzer) ContextChars() int { return a.contextChars }

// IsRemote reports whether location is served by a configured Fetcher.
func (a *Analyzer) IsRemote(location string) bool {
	return a.fetcherFor(location) != nil
}

func (a *Analyzer) fetcherFor(location string) Fetcher {
	for _, f := range a.fetchers {
		if f.Handles(location) {
			return f
		}
	}
	return nil
}

// Analyze analyzes the resume file at path. A missing, unsupported or unreadable
// file is analyzed as empty text.
func (a *Analyzer) Analyze(path string, profile types.CandidateProfile) *types.AnalysisResult {
	res := ingestion.ExtractFile(path)
	a.emit(StepExtract, "text extracted", res.Reason)
	return a.AnalyzeText(res.Text, profile)
}

// AnalyzeContext analyzes the resume at location, which is a local path or a remote
// location handled by a configured Fetcher. ctx bounds the extraction; when it ends
// first the resume is analyzed as empty text.
func (a *Analyzer) AnalyzeContext(ctx context.Context, location string, profile types.CandidateProfile) *types.AnalysisResult {
	var res ingestion.Result
	if f := a.fetcherFor(location); f != nil {
		data, err := f.Fetch(ctx, location)
		if err != nil {
			slog.Warn("resume download failed", slog.String("location", location), slog.Any("error", err))
			res = ingestion.Result{Reason: ingestion.ReasonReadFailed, Err: err}
		} else {
			res = ingestion.ExtractBytes(documentName(location), data)
		}
	} else {
		res = ingestion.ExtractFileContext(ctx, location)
	}
	a.emit(StepExtract, "text extracted", res.Reason)
	return a.AnalyzeText(res.Text, profile)
}

// AnalyzeBytes analyzes an in-memory document whose format is given by name's extension.
func (a *Analyzer) AnalyzeBytes(name string, data []byte, profile types.CandidateProfile) *types.AnalysisResult {
	res := ingestion.ExtractBytes(name, data)
	a.emit(StepExtract, "text extracted", res.Reason)
	return a.AnalyzeText(res.Text, profile)
}

// AnalyzeText analyzes already extracted resume text.
func (a *Analyzer) AnalyzeText(text string, profile types.CandidateProfile) *types.AnalysisResult {
	extracted, provenance := a.matcher.ExtractSkills(text, a.contextChars)
	a.emit(StepSkills, "skills extracted", extracted)

	roles := a.roles.Predict(extracted)
	a.emit(StepRoles, "roles predicted", roles)

	ats := a.scorer.Score(ranking.ScoreInput{
		ProfileSkills: profile.Skills,
		ResumeSkills:  extracted,
		Experience:    profile.ExperienceYears,
		Education:     profile.Education,
	})
	a.emit(StepScore, "ats computed", ats)

	return &types.AnalysisResult{
		TextLength:       utf8.RuneCountInString(text),
		ExtractedSkills:  extracted,
		SkillsProvenance: provenance,
		PredictedRoles:   roles,
		ATS:              ats,
		Suggestions:      Suggestions(ats.Score),
	}
}

// documentName drops a query or fragment so the extension reflects the document type.
func documentName(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		return location[:i]
	}
	return location
}

func (a *Analyzer) emit(step, message string, content any) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
