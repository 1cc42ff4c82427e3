package config

import (
	"bytes"
	"fmt"
	"text/template"
)

const defaultConfigTmpl = `# srcscan configuration
# Values shown are the defaults. Uncomment a key to change it.

[analysis]
# Glob patterns, matched against paths relative to each root
# include_patterns = ["src/**"]
# exclude_patterns = ["vendor/**", "**/generated/**"]
parallel = {{.Parallel}}
respect_gitignore = {{.RespectGitignore}}
include_tests = {{.IncludeTests}}
# Skip files larger than this many bytes; 0 disables the limit
max_file_size = 0

[style]
# Lines longer than this count as long lines
line_limit = {{.LineLimit}}
# Files shorter than this are ignored by the naming detectors
small_file_lines = {{.SmallFileLines}}
# Share of identifiers that must agree before a naming convention is reported
naming_threshold = {{.NamingThreshold}}
# Inconsistencies printed in text reports; 0 prints all
max_inconsistencies = {{.MaxInconsistencies}}

[output]
format = "{{.Format}}"
# directory = ".srcscan/reports"

[completion]
# OpenAI compatible chat completions endpoint used by 'srcscan describe'
endpoint = "{{.Endpoint}}"
batch_model = "{{.BatchModel}}"
final_model = "{{.FinalModel}}"
# Environment variable holding the API key
api_key_env = "{{.APIKeyEnv}}"
timeout_seconds = {{.TimeoutSeconds}}

[logging]
# debug, info, warn or error
level = "{{.LogLevel}}"

# Layer rules checked by 'srcscan deps'. A dependency between two
# different layers must be allowed by a rule for its source layer.
#
# [[architecture.layers]]
# name = "domain"
# paths = ["domain/**"]
#
# [[architecture.layers]]
# name = "service"
# paths = ["service/**"]
#
# [[architecture.rules]]
# from = "service"
# allow = ["domain"]
`

type defaultConfigValues struct {
	Parallel           bool
	RespectGitignore   bool
	IncludeTests       bool
	LineLimit          int
	SmallFileLines     int
	NamingThreshold    float64
	MaxInconsistencies int
	Format             string
	Endpoint           string
	BatchModel         string
	FinalModel         string
	APIKeyEnv          string
	TimeoutSeconds     int
	LogLevel           string
}

func newDefaultConfigValues() defaultConfigValues {
	d := DefaultConfig()
	return defaultConfigValues{
		Parallel:           d.Analysis.Parallel,
		RespectGitignore:   d.Analysis.RespectGitignore,
		IncludeTests:       d.Analysis.IncludeTests,
		LineLimit:          d.Style.LineLimit,
		SmallFileLines:     d.Style.SmallFileLines,
		NamingThreshold:    d.Style.NamingThreshold,
		MaxInconsistencies: d.Style.MaxInconsistencies,
		Format:             d.Output.Format,
		Endpoint:           d.Completion.Endpoint,
		BatchModel:         d.Completion.BatchModel,
		FinalModel:         d.Completion.FinalModel,
		APIKeyEnv:          d.Completion.APIKeyEnv,
		TimeoutSeconds:     d.Completion.TimeoutSeconds,
		LogLevel:           d.Logging.Level,
	}
}

// GenerateDefaultConfigTOML renders the commented default .srcscan.toml
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}
	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template back into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	data, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}
	return NewTomlConfigLoader().parse([]byte(data))
}
