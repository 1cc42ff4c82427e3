package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// codeCategories maps domain error codes to categories; codes win over message patterns
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
	domain.ErrCodeAnalysisError:     domain.ErrorCategoryProcessing,
	domain.ErrCodeExternalService:   domain.ErrorCategoryExternal,
	domain.ErrCodeInternal:          domain.ErrorCategoryUnknown,
}

// initializeErrorPatterns lists message patterns in match order
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"deadline",
			"context canceled",
			"timed out",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"toml",
			"yaml",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no files found",
			"does not exist",
			"not a directory",
			"file not found",
			"cannot access",
			"permission denied",
		}},
		{domain.ErrorCategoryExternal, []string{
			"completion",
			"endpoint",
			"status code",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"format",
			"cannot create",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"analysis",
			"process",
			"failed to analyze",
		}},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	var de domain.DomainError
	if errors.As(err, &de) {
		if category, ok := codeCategories[de.Code]; ok {
			if errors.Is(err, context.DeadlineExceeded) {
				category = domain.ErrorCategoryTimeout
			}
			return &domain.CategorizedError{
				Category: category,
				Message:  ec.getCategoryMessage(category),
				Original: err,
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return &domain.CategorizedError{
				Category: cp.category,
				Message:  ec.getCategoryMessage(cp.category),
				Original: err,
			}
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the directory exists and contains source files",
			"Try: srcscan metrics . --verbose to see detailed file discovery",
			"Check --include/--exclude patterns and .gitignore rules",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: srcscan init to generate a valid config file",
			"Check for syntax errors in .srcscan.toml",
		},
		domain.ErrorCategoryTimeout: {
			"Analyze a smaller directory or exclude generated code",
			"Check if any files are unusually large",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions and output format validity",
			"Ensure the output directory is writable",
		},
		domain.ErrorCategoryProcessing: {
			"Run individual analyses to isolate the problem",
			"Try: srcscan run . --no-parallel --verbose",
		},
		domain.ErrorCategoryExternal: {
			"Check the completion endpoint and model in the completion config",
			"Ensure the API key environment variable is set",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to process input files or directories",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Analysis timed out",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error during code analysis processing",
		domain.ErrorCategoryExternal:   "Text completion service failed",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
