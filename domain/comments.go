package domain

import (
	"context"
	"io"
)

// CommentPolicy selects how comment-only lines are treated
type CommentPolicy string

const (
	// CommentPolicyClean drops comment-only lines from the output
	CommentPolicyClean CommentPolicy = "clean"
	// CommentPolicyDelete keeps comment-only lines as empty lines and records an audit trail
	CommentPolicyDelete CommentPolicy = "delete"
)

// DeletedComment is one audit record of a removed comment
type DeletedComment struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Comment string `json:"commentRemoved" yaml:"comment_removed"`
}

// CommentFileResult describes what happened to one file
type CommentFileResult struct {
	Path     string `json:"path" yaml:"path"`
	Language string `json:"language" yaml:"language"`
	Removed  int    `json:"removed" yaml:"removed"`
	Modified bool   `json:"modified" yaml:"modified"`
}

// CommentRequest represents input for comment removal
type CommentRequest struct {
	ScanOptions

	Policy CommentPolicy
	// DryRun reports what would change without touching files
	DryRun bool
	// AuditPath is where deleted comments are exported as JSON; empty disables export
	AuditPath string

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// CommentResponse is the result of a comment removal run
type CommentResponse struct {
	Policy       CommentPolicy       `json:"policy" yaml:"policy"`
	DryRun       bool                `json:"dry_run" yaml:"dry_run"`
	Files        []CommentFileResult `json:"files" yaml:"files"`
	FilesChanged int                 `json:"files_changed" yaml:"files_changed"`
	TotalRemoved int                 `json:"total_removed" yaml:"total_removed"`
	Deleted      []DeletedComment    `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Warnings     []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	RunID        string              `json:"run_id" yaml:"run_id"`
	GeneratedAt  string              `json:"generated_at" yaml:"generated_at"`
}

// CommentService strips comments from a tree
type CommentService interface {
	Strip(ctx context.Context, req CommentRequest) (*CommentResponse, error)
}

// CommentOutputFormatter formats comment removal results
type CommentOutputFormatter interface {
	Write(response *CommentResponse, format OutputFormat, writer io.Writer) error
}
