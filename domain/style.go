package domain

import (
	"context"
	"fmt"
	"io"
)

// IndentationKind is the family of a detected indentation style
type IndentationKind string

const (
	IndentSpaces  IndentationKind = "spaces"
	IndentTabs    IndentationKind = "tabs"
	IndentMixed   IndentationKind = "mixed"
	IndentUnknown IndentationKind = "unknown"
)

// Indentation is Spaces(n), Tabs, Mixed or Unknown
type Indentation struct {
	Kind  IndentationKind `json:"kind" yaml:"kind"`
	Width int             `json:"width,omitempty" yaml:"width,omitempty"`
}

// Spaces returns the Spaces(n) indentation
func Spaces(n int) Indentation { return Indentation{Kind: IndentSpaces, Width: n} }

var (
	Tabs               = Indentation{Kind: IndentTabs}
	MixedIndentation   = Indentation{Kind: IndentMixed}
	UnknownIndentation = Indentation{Kind: IndentUnknown}
)

// IsUnknown reports whether nothing could be detected
func (i Indentation) IsUnknown() bool { return i.Kind == IndentUnknown || i.Kind == "" }

func (i Indentation) String() string {
	switch i.Kind {
	case IndentSpaces:
		return fmt.Sprintf("Spaces(%d)", i.Width)
	case IndentTabs:
		return "Tabs"
	case IndentMixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

// Describe renders the indentation the way inconsistency messages need it
func (i Indentation) Describe() string {
	switch i.Kind {
	case IndentSpaces:
		return fmt.Sprintf("%d spaces", i.Width)
	case IndentTabs:
		return "tabs"
	case IndentMixed:
		return "mixed indentation"
	default:
		return "unknown indentation"
	}
}

// BraceStyle is where opening braces of declarations are placed
type BraceStyle string

const (
	BraceSameLine BraceStyle = "same_line"
	BraceNextLine BraceStyle = "next_line"
	BraceMixed    BraceStyle = "mixed"
	BraceUnknown  BraceStyle = "unknown"
)

// Describe renders the brace style for messages
func (b BraceStyle) Describe() string {
	switch b {
	case BraceSameLine:
		return "same line"
	case BraceNextLine:
		return "next line"
	case BraceMixed:
		return "mixed style"
	default:
		return "unknown style"
	}
}

// NamingConvention is the dominant casing style of a category of identifiers
type NamingConvention string

const (
	NamingCamelCase  NamingConvention = "camelCase"
	NamingSnakeCase  NamingConvention = "snake_case"
	NamingPascalCase NamingConvention = "PascalCase"
	NamingKebabCase  NamingConvention = "kebab-case"
	NamingMixed      NamingConvention = "mixed"
	NamingUnknown    NamingConvention = "unknown"
)

// Describe renders the convention for messages
func (n NamingConvention) Describe() string {
	switch n {
	case NamingMixed:
		return "mixed conventions"
	case NamingUnknown, "":
		return "unknown convention"
	default:
		return string(n)
	}
}

// Severity ranks style inconsistencies
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Level returns an integer rank for sorting (Info < Low < Medium < High)
func (s Severity) Level() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// LineMetrics holds per-file line length statistics
type LineMetrics struct {
	AvgLength               float64 `json:"avg_length" yaml:"avg_length"`
	MaxLength               int     `json:"max_length" yaml:"max_length"`
	OverLimitCount          int     `json:"over_limit_count" yaml:"over_limit_count"`
	OverLimitLines          []int   `json:"over_limit_lines,omitempty" yaml:"over_limit_lines,omitempty"`
	TrailingWhitespaceLines []int   `json:"trailing_whitespace_lines,omitempty" yaml:"trailing_whitespace_lines,omitempty"`
}

// FunctionMetrics holds per-file function size statistics
type FunctionMetrics struct {
	Count     int     `json:"count" yaml:"count"`
	AvgLength float64 `json:"avg_length" yaml:"avg_length"`
	MaxLength int     `json:"max_length" yaml:"max_length"`
	AvgParams float64 `json:"avg_params" yaml:"avg_params"`
	MaxParams int     `json:"max_params" yaml:"max_params"`
}

// StyleProfile captures the detected style of one file, or the majority
// style of a whole tree when it is the global profile.
type StyleProfile struct {
	FileType                string                      `json:"file_type" yaml:"file_type"`
	Indentation             Indentation                 `json:"indentation" yaml:"indentation"`
	BraceStyle              BraceStyle                  `json:"brace_style" yaml:"brace_style"`
	LineMetrics             LineMetrics                 `json:"line_metrics" yaml:"line_metrics"`
	FunctionMetrics         FunctionMetrics             `json:"function_metrics" yaml:"function_metrics"`
	Naming                  map[string]NamingConvention `json:"naming" yaml:"naming"`
	HasTrailingSemicolons   *bool                       `json:"has_trailing_semicolons,omitempty" yaml:"has_trailing_semicolons,omitempty"`
	TrailingWhitespaceCount int                         `json:"trailing_whitespace_count" yaml:"trailing_whitespace_count"`
	// CommentRatio is a percentage of non-blank lines that are comments.
	CommentRatio float64 `json:"comment_ratio" yaml:"comment_ratio"`

	IndentationViolations []int `json:"indentation_violations,omitempty" yaml:"indentation_violations,omitempty"`
	BraceViolations       []int `json:"brace_violations,omitempty" yaml:"brace_violations,omitempty"`
	NonEmptyLines         int   `json:"non_empty_lines" yaml:"non_empty_lines"`
}

// NewStyleProfile returns an empty profile for the given file type
func NewStyleProfile(fileType string) *StyleProfile {
	return &StyleProfile{
		FileType:    fileType,
		Indentation: UnknownIndentation,
		BraceStyle:  BraceUnknown,
		Naming:      make(map[string]NamingConvention),
	}
}

// StyleInconsistency is a deviation of one file from the global profile
type StyleInconsistency struct {
	FilePath    string   `json:"file_path" yaml:"file_path"`
	LineNumber  *int     `json:"line_number,omitempty" yaml:"line_number,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Severity    Severity `json:"severity" yaml:"severity"`
}

// CodeStyleAnalysis is the aggregated style result for a tree
type CodeStyleAnalysis struct {
	FileProfiles     map[string]*StyleProfile `json:"file_profiles" yaml:"file_profiles"`
	GlobalProfile    *StyleProfile            `json:"global_profile" yaml:"global_profile"`
	Inconsistencies  []StyleInconsistency     `json:"inconsistencies" yaml:"inconsistencies"`
	ConsistencyScore float64                  `json:"consistency_score" yaml:"consistency_score"`
	ChecksPerformed  int                      `json:"checks_performed" yaml:"checks_performed"`
	ChecksFailed     int                      `json:"checks_failed" yaml:"checks_failed"`
}

// NewCodeStyleAnalysis returns an empty analysis with a perfect score
func NewCodeStyleAnalysis() *CodeStyleAnalysis {
	return &CodeStyleAnalysis{
		FileProfiles:     make(map[string]*StyleProfile),
		GlobalProfile:    NewStyleProfile(""),
		Inconsistencies:  []StyleInconsistency{},
		ConsistencyScore: 1.0,
	}
}

// StyleSummary contains aggregate counts for reporting
type StyleSummary struct {
	FilesAnalyzed    int              `json:"files_analyzed" yaml:"files_analyzed"`
	Inconsistencies  int              `json:"inconsistencies" yaml:"inconsistencies"`
	BySeverity       map[Severity]int `json:"by_severity" yaml:"by_severity"`
	ConsistencyScore float64          `json:"consistency_score" yaml:"consistency_score"`
}

// StyleRequest represents input for style analysis
type StyleRequest struct {
	ScanOptions

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// MaxInconsistencies limits the text report; 0 prints all
	MaxInconsistencies int

	// Detector thresholds; zero values select the defaults
	LineLimit       int
	SmallFileLines  int
	NamingThreshold float64
}

// StyleResponse is the result of style analysis
type StyleResponse struct {
	Analysis    *CodeStyleAnalysis `json:"analysis" yaml:"analysis"`
	Summary     StyleSummary       `json:"summary" yaml:"summary"`
	Warnings    []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	RunID       string             `json:"run_id" yaml:"run_id"`
	GeneratedAt string             `json:"generated_at" yaml:"generated_at"`
	Version     string             `json:"version" yaml:"version"`
}

// StyleService defines the core business logic for style analysis
type StyleService interface {
	Analyze(ctx context.Context, req StyleRequest) (*StyleResponse, error)
}

// StyleOutputFormatter formats style analysis results
type StyleOutputFormatter interface {
	Write(response *StyleResponse, format OutputFormat, writer io.Writer) error
}
