package service

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
)

// OutputFormatResolver resolves the output format and file extension from flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine parses a --format value against the formats a command supports.
// An empty name selects text.
func (r *OutputFormatResolver) Determine(name string, allowed []domain.OutputFormat) (domain.OutputFormat, string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = string(domain.OutputFormatText)
	}
	switch name {
	case "yml":
		name = string(domain.OutputFormatYAML)
	case "md":
		name = string(domain.OutputFormatMarkdown)
	case "puml":
		name = string(domain.OutputFormatPlantUML)
	case "txt":
		name = string(domain.OutputFormatText)
	}

	for _, f := range allowed {
		if string(f) == name {
			return f, f.Extension(), nil
		}
	}

	names := make([]string, len(allowed))
	for i, f := range allowed {
		names[i] = string(f)
	}
	return "", "", domain.NewDomainError(domain.ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported format: %s (expected one of: %s)", name, strings.Join(names, ", ")), nil)
}
