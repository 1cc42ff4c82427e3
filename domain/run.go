package domain

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"
)

// Health score constants for the combined run report
const (
	// Penalty per dependency cycle, capped at MaxCyclesPenalty
	CyclePenalty     = 4
	MaxCyclesPenalty = 20

	// Share of the score driven by style consistency
	MaxStylePenalty = 40

	// Comment density below this percentage costs MaxCommentPenalty
	LowCommentRatio   = 5.0
	MaxCommentPenalty = 10

	// Grade thresholds
	GradeAThreshold = 85
	GradeBThreshold = 70
	GradeCThreshold = 55
	GradeDThreshold = 40

	MinimumScore = 0
)

// RunRequest represents input for the combined metrics, deps and style run
type RunRequest struct {
	ScanOptions

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	EnableMetrics bool
	EnableDeps    bool
	EnableStyle   bool

	// Optional layer rules for the dependency analysis
	Architecture *ArchitectureConfigSpec

	// Style detector thresholds; zero values select the defaults
	LineLimit       int
	SmallFileLines  int
	NamingThreshold float64
}

// RunResponse represents the combined results of all analyses
type RunResponse struct {
	Metrics      *MetricsResponse    `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Dependencies *DependencyResponse `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Style        *StyleResponse      `json:"style,omitempty" yaml:"style,omitempty"`

	Summary RunSummary `json:"summary" yaml:"summary"`

	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Duration    int64     `json:"duration_ms" yaml:"duration_ms"`
	Version     string    `json:"version" yaml:"version"`
}

// RunSummary provides an overall summary of all analyses
type RunSummary struct {
	TotalFiles       int     `json:"total_files" yaml:"total_files"`
	LinesOfCode      int     `json:"lines_of_code" yaml:"lines_of_code"`
	CommentRatio     float64 `json:"comment_ratio" yaml:"comment_ratio"`
	Cycles           int     `json:"cycles" yaml:"cycles"`
	ConsistencyScore float64 `json:"consistency_score" yaml:"consistency_score"`
	Inconsistencies  int     `json:"inconsistencies" yaml:"inconsistencies"`

	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled"`
	DepsEnabled    bool `json:"deps_enabled" yaml:"deps_enabled"`
	StyleEnabled   bool `json:"style_enabled" yaml:"style_enabled"`

	HealthScore int    `json:"health_score" yaml:"health_score"`
	Grade       string `json:"grade" yaml:"grade"`
}

// CalculateHealthScore derives a 0-100 score and letter grade from the enabled analyses
func (s *RunSummary) CalculateHealthScore() error {
	if s.ConsistencyScore < 0 || s.ConsistencyScore > 1 {
		return fmt.Errorf("consistency score out of range: %f", s.ConsistencyScore)
	}

	score := 100
	if s.DepsEnabled {
		score -= min(s.Cycles*CyclePenalty, MaxCyclesPenalty)
	}
	if s.StyleEnabled {
		score -= int(math.Round((1 - s.ConsistencyScore) * MaxStylePenalty))
	}
	if s.MetricsEnabled && s.LinesOfCode > 0 && s.CommentRatio < LowCommentRatio {
		score -= MaxCommentPenalty
	}
	if score < MinimumScore {
		score = MinimumScore
	}

	s.HealthScore = score
	s.Grade = GetGradeFromScore(score)
	return nil
}

// GetGradeFromScore maps a health score to a letter grade
func GetGradeFromScore(score int) string {
	switch {
	case score >= GradeAThreshold:
		return "A"
	case score >= GradeBThreshold:
		return "B"
	case score >= GradeCThreshold:
		return "C"
	case score >= GradeDThreshold:
		return "D"
	default:
		return "F"
	}
}

// RunOutputFormatter formats combined run results
type RunOutputFormatter interface {
	Write(response *RunResponse, format OutputFormat, writer io.Writer) error
}

// RunService runs every enabled analysis over one scan
type RunService interface {
	Run(ctx context.Context, req RunRequest) (*RunResponse, error)
}
