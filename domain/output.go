package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatCSV      OutputFormat = "csv"
	OutputFormatDOT      OutputFormat = "dot"
	OutputFormatPlantUML OutputFormat = "plantuml"
	OutputFormatMermaid  OutputFormat = "mermaid"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// Extension returns the file extension used for reports in this format
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatPlantUML:
		return "puml"
	case OutputFormatMermaid:
		return "mmd"
	case OutputFormatMarkdown:
		return "md"
	case OutputFormatText:
		return "txt"
	default:
		return string(f)
	}
}

// ScanOptions selects the files an analysis runs over
type ScanOptions struct {
	// Root directories to analyze
	Paths []string

	IncludePatterns []string
	ExcludePatterns []string

	// RespectGitignore honors .gitignore files found at each root
	RespectGitignore bool
	// IncludeTests keeps files classified as tests in the scan
	IncludeTests bool
	// Parallel fans per-file work out across cores; false runs sequentially
	Parallel bool
	// MaxFileSize skips larger files; 0 means no limit
	MaxFileSize int64
}

// FileSet is the result of walking the requested roots
type FileSet struct {
	Roots       []string `json:"roots" yaml:"roots"`
	Files       []string `json:"files" yaml:"files"`
	Directories int      `json:"directories" yaml:"directories"`
}

// FileReader collects and reads source files
type FileReader interface {
	// CollectFiles walks every root in opts and returns the matching files, sorted
	CollectFiles(opts ScanOptions) (*FileSet, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)
}

// ReportWriter abstracts writing reports to a destination (file or writer).
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write writes formatted content using the provided writeFunc.
	// - If outputPath is non-empty, implementations should create/truncate the file
	//   at that path and pass the file as the writer to writeFunc.
	// - If outputPath is empty, implementations should pass the provided writer to writeFunc.
	// Implementations may emit user-facing status messages (e.g., file paths).
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}

// ProgressManager manages progress tracking for analysis
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}

// ParallelExecutor manages parallel execution of tasks
type ParallelExecutor interface {
	// Execute runs tasks in parallel with the given configuration
	Execute(ctx context.Context, tasks []ExecutableTask) error

	// SetMaxConcurrency sets the maximum number of concurrent tasks
	SetMaxConcurrency(max int)

	// SetTimeout sets the timeout for all tasks
	SetTimeout(timeout time.Duration)
}

// ExecutableTask represents a task that can be executed in parallel
type ExecutableTask interface {
	// Name returns the name of the task
	Name() string

	// Execute runs the task and returns the result
	Execute(ctx context.Context) (interface{}, error)

	// IsEnabled returns whether the task should be executed
	IsEnabled() bool
}

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryExternal   ErrorCategory = "External Service Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError represents an error with category information
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// ErrorCategorizer categorizes errors for better reporting
type ErrorCategorizer interface {
	// Categorize determines the category of an error
	Categorize(err error) *CategorizedError

	// GetRecoverySuggestions returns recovery suggestions for an error category
	GetRecoverySuggestions(category ErrorCategory) []string
}
