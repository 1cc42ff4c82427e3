package domain

import (
	"context"
	"io"
)

// TextCompleter is an external text-generation capability: a prompt in, a response out
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DescribeRequest represents input for the project description workflow
type DescribeRequest struct {
	ScanOptions

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// BatchSummary is the completion result for one chunk of files
type BatchSummary struct {
	Directory string   `json:"directory" yaml:"directory"`
	Files     []string `json:"files" yaml:"files"`
	Summary   string   `json:"summary" yaml:"summary"`
}

// DescribeResponse is the result of the describe workflow
type DescribeResponse struct {
	Description   string         `json:"description" yaml:"description"`
	Batches       []BatchSummary `json:"batches" yaml:"batches"`
	FilesIncluded int            `json:"files_included" yaml:"files_included"`
	FilesSkipped  int            `json:"files_skipped" yaml:"files_skipped"`
	Warnings      []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	RunID         string         `json:"run_id" yaml:"run_id"`
	GeneratedAt   string         `json:"generated_at" yaml:"generated_at"`
}

// DescribeService produces a natural-language description of a tree
type DescribeService interface {
	Describe(ctx context.Context, req DescribeRequest) (*DescribeResponse, error)
}

// DescribeOutputFormatter formats describe results
type DescribeOutputFormatter interface {
	Write(response *DescribeResponse, format OutputFormat, writer io.Writer) error
}
