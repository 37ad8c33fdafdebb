// Package ingestion extracts plain text from resume documents.
//
// Extraction never fails from the caller's point of view: a missing file, an
// unsupported format or a broken document all produce empty text. The Result type
// records why, for callers that want diagnostics.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format is a supported document format, named after its file extension.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// Reason explains the outcome of an extraction.
type Reason string

// Extraction outcomes. Every reason except ReasonOK comes with empty text.
const (
	ReasonOK               Reason = "ok"
	ReasonNotFound         Reason = "not_found"
	ReasonUnsupported      Reason = "unsupported_extension"
	ReasonReadFailed       Reason = "read_failed"
	ReasonExtractionFailed Reason = "extraction_failed"
	ReasonCanceled         Reason = "canceled"
)

// Result is the outcome of extracting one document.
type Result struct {
	Text   string
	Format Format
	Reason Reason
	Err    error
}

// OK reports whether the document was read and decoded. The text may still be empty.
func (r Result) OK() bool {
	return r.Reason == ReasonOK
}

// FormatOf returns the format implied by name's extension, case-insensitively.
func FormatOf(name string) (Format, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "pdf":
		return FormatPDF, true
	case "txt":
		return FormatText, true
	case "docx":
		return FormatDOCX, true
	case "html", "htm":
		return FormatHTML, true
	default:
		return "", false
	}
}

// Extract returns the text of the document at path, or "" if there is none to be had.
func Extract(path string) string {
	return ExtractFile(path).Text
}

// ExtractFile extracts the document at path.
func ExtractFile(path string) Result {
	if _, err := os.Stat(path); err != nil {
		return failed(path, Result{Reason: ReasonNotFound, Err: err})
	}

	format, ok := FormatOf(path)
	if !ok {
		return failed(path, Result{Reason: ReasonUnsupported, Err: fmt.Errorf("unsupported file extension %q", filepath.Ext(path))})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return failed(path, Result{Format: format, Reason: ReasonReadFailed, Err: err})
	}
	return extract(path, format, data)
}

// ExtractBytes extracts an in-memory document. name is only used to pick the format.
func ExtractBytes(name string, data []byte) Result {
	format, ok := FormatOf(name)
	if !ok {
		return failed(name, Result{Reason: ReasonUnsupported, Err: fmt.Errorf("unsupported file extension %q", filepath.Ext(name))})
	}
	return extract(name, format, data)
}

// ExtractFileContext is ExtractFile bounded by ctx. If ctx ends first the result is
// empty with ReasonCanceled; the abandoned extraction finishes in the background.
func ExtractFileContext(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return failed(path, Result{Reason: ReasonCanceled, Err: err})
	}

	done := make(chan Result, 1)
	go func() {
		done <- ExtractFile(path)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return failed(path, Result{Reason: ReasonCanceled, Err: ctx.Err()})
	}
}

func extract(name string, format Format, data []byte) Result {
	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatText:
		text, err = decodeText(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatHTML:
		text, err = extractHTML(data)
	}
	if err != nil {
		return failed(name, Result{Format: format, Reason: ReasonExtractionFailed, Err: err})
	}
	return Result{Text: text, Format: format, Reason: ReasonOK}
}

func failed(source string, res Result) Result {
	res.Text = ""
	slog.Debug("no text extracted",
		slog.String("source", source),
		slog.String("reason", string(res.Reason)),
		slog.Any("error", res.Err))
	return res
}
