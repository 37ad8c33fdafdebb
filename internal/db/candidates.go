package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Application statuses accepted as a filter.
const (
	StatusApplied     = "applied"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// ValidStatuses lists the accepted application statuses.
var ValidStatuses = []string{StatusApplied, StatusShortlisted, StatusRejected, StatusHired}

// listCandidatesSQL selects each job seeker who applied to one of the recruiter's
// postings, with their most recent resume. $2 = '' disables the status filter.
const listCandidatesSQL = `
SELECT js.id, js.full_name, COALESCE(js.email, ''),
       COALESCE(js.primary_skills, ''), COALESCE(js.experience_years::text, ''),
       COALESCE(r.filename, '')
FROM job_seekers js
LEFT JOIN LATERAL (
    SELECT filename FROM resumes
    WHERE user_id = js.user_id
    ORDER BY id DESC
    LIMIT 1
) r ON true
WHERE js.id IN (
    SELECT a.seeker_id
    FROM applications a
    JOIN job_postings jp ON a.job_id = jp.id
    WHERE jp.recruiter_id = $1 AND ($2 = '' OR a.status = $2)
)
ORDER BY js.full_name, js.id`

// CandidateFilter selects the candidates of one recruiter.
type CandidateFilter struct {
	RecruiterID int64
	Status      string // empty for every status
	UploadDir   string // resume filenames are joined onto this directory
}

// Validate checks the filter before it reaches the database.
func (f CandidateFilter) Validate() error {
	if f.RecruiterID <= 0 {
		return fmt.Errorf("recruiter id must be positive, got %d", f.RecruiterID)
	}
	if f.Status == "" {
		return nil
	}
	for _, s := range ValidStatuses {
		if f.Status == s {
			return nil
		}
	}
	return fmt.Errorf("unknown application status %q (want one of %s)", f.Status, strings.Join(ValidStatuses, ", "))
}

// ListCandidates returns the applicants to the recruiter's postings, ordered by name.
// Candidates without a resume have an empty Resume.
func (db *DB) ListCandidates(ctx context.Context, filter CandidateFilter) ([]types.Candidate, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, listCandidatesSQL, filter.RecruiterID, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	candidates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.Candidate, error) {
		var (
			id         int64
			c          types.Candidate
			experience string
			filename   string
		)
		if err := row.Scan(&id, &c.Name, &c.Email, &c.Skills, &experience, &filename); err != nil {
			return c, err
		}
		c.ID = strconv.FormatInt(id, 10)
		c.ExperienceYears = types.Experience(experience)
		c.Resume = ResumePath(filter.UploadDir, filename)
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan candidates: %w", err)
	}
	return candidates, nil
}

// ResumePath joins the base name of a stored resume filename onto the upload
// directory. Absolute paths and object storage URIs are returned unchanged.
func ResumePath(uploadDir, filename string) string {
	switch {
	case filename == "":
		return ""
	case strings.Contains(filename, "://"), filepath.IsAbs(filename), uploadDir == "":
		return filename
	}
	return filepath.Join(uploadDir, filepath.Base(filename))
}
