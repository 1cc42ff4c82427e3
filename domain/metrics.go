package domain

import (
	"context"
	"io"
)

// FileMetrics holds the line counts of a single source file
type FileMetrics struct {
	Path         string `json:"path" yaml:"path"`
	Language     string `json:"language" yaml:"language"`
	LinesOfCode  int    `json:"lines_of_code" yaml:"lines_of_code"`
	BlankLines   int    `json:"blank_lines" yaml:"blank_lines"`
	CommentLines int    `json:"comment_lines" yaml:"comment_lines"`
	IsTestFile   bool   `json:"is_test_file" yaml:"is_test_file"`
}

// TotalLines returns code + blank + comment lines
func (m FileMetrics) TotalLines() int {
	return m.LinesOfCode + m.BlankLines + m.CommentLines
}

// LineCounts is a bucket of accumulated line counts
type LineCounts struct {
	Files        int `json:"files" yaml:"files"`
	LinesOfCode  int `json:"lines_of_code" yaml:"lines_of_code"`
	BlankLines   int `json:"blank_lines" yaml:"blank_lines"`
	CommentLines int `json:"comment_lines" yaml:"comment_lines"`
}

// Add accumulates one file into the bucket
func (c *LineCounts) Add(m FileMetrics) {
	c.Files++
	c.LinesOfCode += m.LinesOfCode
	c.BlankLines += m.BlankLines
	c.CommentLines += m.CommentLines
}

// TotalLines returns code + blank + comment lines of the bucket
func (c LineCounts) TotalLines() int {
	return c.LinesOfCode + c.BlankLines + c.CommentLines
}

// LanguageMetrics is the per-language bucket split into production and test code
type LanguageMetrics struct {
	Language   string     `json:"language" yaml:"language"`
	Total      LineCounts `json:"total" yaml:"total"`
	Production LineCounts `json:"production" yaml:"production"`
	Test       LineCounts `json:"test" yaml:"test"`
}

// AggregateMetrics accumulates FileMetrics across a tree.
//
// Every accumulated file lands in exactly one of Production or Test, and in
// exactly one language bucket, so Total == Production + Test and the language
// buckets sum to Total.
type AggregateMetrics struct {
	Total            LineCounts                  `json:"total" yaml:"total"`
	Production       LineCounts                  `json:"production" yaml:"production"`
	Test             LineCounts                  `json:"test" yaml:"test"`
	ByLanguage       map[string]*LanguageMetrics `json:"by_language" yaml:"by_language"`
	TotalDirectories int                         `json:"total_directories" yaml:"total_directories"`
}

// NewAggregateMetrics returns an empty accumulator
func NewAggregateMetrics() *AggregateMetrics {
	return &AggregateMetrics{ByLanguage: make(map[string]*LanguageMetrics)}
}

// Add accumulates one file's metrics
func (a *AggregateMetrics) Add(m FileMetrics) {
	if a.ByLanguage == nil {
		a.ByLanguage = make(map[string]*LanguageMetrics)
	}
	bucket, ok := a.ByLanguage[m.Language]
	if !ok {
		bucket = &LanguageMetrics{Language: m.Language}
		a.ByLanguage[m.Language] = bucket
	}

	a.Total.Add(m)
	bucket.Total.Add(m)
	if m.IsTestFile {
		a.Test.Add(m)
		bucket.Test.Add(m)
	} else {
		a.Production.Add(m)
		bucket.Production.Add(m)
	}
}

// TotalFiles returns the number of accumulated files
func (a *AggregateMetrics) TotalFiles() int { return a.Total.Files }

// CodeToCommentRatio returns code lines per comment line, 0 when there are no comments
func (a *AggregateMetrics) CodeToCommentRatio() float64 {
	if a.Total.CommentLines == 0 {
		return 0
	}
	return float64(a.Total.LinesOfCode) / float64(a.Total.CommentLines)
}

// MetricsRequest represents input for line metrics analysis
type MetricsRequest struct {
	ScanOptions

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// ShowFiles includes the per-file table in text output
	ShowFiles bool
}

// MetricsResponse is the result of metrics analysis
type MetricsResponse struct {
	Files       []FileMetrics     `json:"files" yaml:"files"`
	Aggregate   *AggregateMetrics `json:"aggregate" yaml:"aggregate"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	RunID       string            `json:"run_id" yaml:"run_id"`
	GeneratedAt string            `json:"generated_at" yaml:"generated_at"`
	Version     string            `json:"version" yaml:"version"`
}

// MetricsService defines the core business logic for metrics analysis
type MetricsService interface {
	Analyze(ctx context.Context, req MetricsRequest) (*MetricsResponse, error)
}

// MetricsOutputFormatter formats metrics analysis results
type MetricsOutputFormatter interface {
	Write(response *MetricsResponse, format OutputFormat, writer io.Writer) error
}
