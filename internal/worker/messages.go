package worker

import (
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// AnalysisRequest asks for one resume to be analyzed.
type AnalysisRequest struct {
	RequestID string `json:"request_id,omitempty" validate:"omitempty,max=128,printascii"`
	Resume    string `json:"resume" validate:"required"` // local path or s3:// URI
	types.CandidateProfile
}

// AnalysisResponse is published once per request. Exactly one of Result and Error
// is set; Error reports a resume location the worker refused to read.
type AnalysisResponse struct {
	RequestID   string                `json:"request_id"`
	Result      *types.AnalysisResult `json:"result,omitempty"`
	Error       string                `json:"error,omitempty"`
	CompletedAt time.Time             `json:"completed_at"`
}
