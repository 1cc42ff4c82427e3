package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/analyzer"
)

// Default completion settings
const (
	DefaultCompletionEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultBatchModel         = "gpt-3.5-turbo"
	DefaultFinalModel         = "gpt-4-turbo"
	DefaultAPIKeyEnv          = "OPENAI_API_KEY"
	DefaultCompletionTimeout  = 60
)

// DefaultOutputDirectory is where report files go when no directory is configured
var DefaultOutputDirectory = filepath.Join(".srcscan", "reports")

// Config represents the main configuration structure
type Config struct {
	Analysis     AnalysisConfig     `mapstructure:"analysis" yaml:"analysis"`
	Style        StyleConfig        `mapstructure:"style" yaml:"style"`
	Output       OutputConfig       `mapstructure:"output" yaml:"output"`
	Completion   CompletionConfig   `mapstructure:"completion" yaml:"completion"`
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging"`
	Architecture ArchitectureConfig `mapstructure:"architecture" yaml:"architecture"`
}

// AnalysisConfig selects the files every command walks
type AnalysisConfig struct {
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Parallel fans per-file work out across cores
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`

	RespectGitignore bool `mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
	IncludeTests     bool `mapstructure:"include_tests" yaml:"include_tests"`

	// MaxFileSize skips larger files, in bytes; 0 means no limit
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
}

// StyleConfig holds the style detector thresholds
type StyleConfig struct {
	LineLimit          int     `mapstructure:"line_limit" yaml:"line_limit"`
	SmallFileLines     int     `mapstructure:"small_file_lines" yaml:"small_file_lines"`
	NamingThreshold    float64 `mapstructure:"naming_threshold" yaml:"naming_threshold"`
	MaxInconsistencies int     `mapstructure:"max_inconsistencies" yaml:"max_inconsistencies"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the default report format
	Format string `mapstructure:"format" yaml:"format"`

	// Directory receives report files written with --output-dir semantics
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// CompletionConfig configures the text completion endpoint used by describe
type CompletionConfig struct {
	Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`
	BatchModel     string `mapstructure:"batch_model" yaml:"batch_model"`
	FinalModel     string `mapstructure:"final_model" yaml:"final_model"`
	APIKeyEnv      string `mapstructure:"api_key_env" yaml:"api_key_env"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// APIKey reads the key from the configured environment variable
func (c CompletionConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// LoggingConfig holds the log level
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// ArchitectureConfig holds layer definitions and the dependencies they allow
type ArchitectureConfig struct {
	Layers []domain.ArchitectureLayer `mapstructure:"layers" yaml:"layers"`
	Rules  []domain.ArchitectureRule  `mapstructure:"rules" yaml:"rules"`
}

// Spec returns the layer rules in domain form, or nil when none are configured
func (a ArchitectureConfig) Spec() *domain.ArchitectureConfigSpec {
	if len(a.Layers) == 0 {
		return nil
	}
	spec := &domain.ArchitectureConfigSpec{
		Layers: append([]domain.ArchitectureLayer(nil), a.Layers...),
	}
	for _, r := range a.Rules {
		spec.Rules = append(spec.Rules, domain.ArchitectureRule{From: r.From, Allow: append([]string(nil), r.Allow...)})
	}
	return spec
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			IncludePatterns:  []string{},
			ExcludePatterns:  []string{},
			Parallel:         true,
			RespectGitignore: true,
			IncludeTests:     true,
		},
		Style: StyleConfig{
			LineLimit:          analyzer.DefaultLineLimit,
			SmallFileLines:     analyzer.DefaultSmallFileLines,
			NamingThreshold:    analyzer.DefaultNamingThreshold,
			MaxInconsistencies: 20,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Completion: CompletionConfig{
			Endpoint:       DefaultCompletionEndpoint,
			BatchModel:     DefaultBatchModel,
			FinalModel:     DefaultFinalModel,
			APIKeyEnv:      DefaultAPIKeyEnv,
			TimeoutSeconds: DefaultCompletionTimeout,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		return NewTomlConfigLoader().LoadFile(configPath)
	}

	config := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// LoadConfigWithTarget resolves configuration for an analysis of target.
// An explicit path wins; otherwise .srcscan.toml is searched from target
// upward, then the YAML/JSON candidates, then defaults.
func LoadConfigWithTarget(configPath, target string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}
	if target != "" {
		start := target
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			start = filepath.Dir(target)
		}
		if abs, err := filepath.Abs(start); err == nil {
			start = abs
		}
		if path, err := FindConfigFile(start); err == nil {
			return NewTomlConfigLoader().LoadFile(path)
		}
	}
	return LoadConfig("")
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		"srcscan.yaml",
		"srcscan.yml",
		".srcscan.yaml",
		".srcscan.yml",
		"srcscan.json",
		".srcscan.json",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Analysis.MaxFileSize < 0 {
		return fmt.Errorf("analysis.max_file_size must be >= 0, got %d", c.Analysis.MaxFileSize)
	}

	if c.Style.LineLimit < 1 {
		return fmt.Errorf("style.line_limit must be >= 1, got %d", c.Style.LineLimit)
	}
	if c.Style.SmallFileLines < 0 {
		return fmt.Errorf("style.small_file_lines must be >= 0, got %d", c.Style.SmallFileLines)
	}
	if c.Style.NamingThreshold <= 0 || c.Style.NamingThreshold > 1 {
		return fmt.Errorf("style.naming_threshold must be in (0, 1], got %g", c.Style.NamingThreshold)
	}
	if c.Style.MaxInconsistencies < 0 {
		return fmt.Errorf("style.max_inconsistencies must be >= 0, got %d", c.Style.MaxInconsistencies)
	}

	validFormats := map[string]bool{
		"text": true, "json": true, "yaml": true, "csv": true,
		"dot": true, "plantuml": true, "mermaid": true, "markdown": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s'", c.Output.Format)
	}

	if c.Completion.TimeoutSeconds < 0 {
		return fmt.Errorf("completion.timeout_seconds must be >= 0, got %d", c.Completion.TimeoutSeconds)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	return c.validateArchitecture()
}

func (c *Config) validateArchitecture() error {
	layers := make(map[string]bool, len(c.Architecture.Layers))
	for _, l := range c.Architecture.Layers {
		if l.Name == "" {
			return fmt.Errorf("architecture.layers entries need a name")
		}
		if layers[l.Name] {
			return fmt.Errorf("architecture layer '%s' defined twice", l.Name)
		}
		layers[l.Name] = true
	}
	for _, r := range c.Architecture.Rules {
		if !layers[r.From] {
			return fmt.Errorf("architecture rule from unknown layer '%s'", r.From)
		}
		for _, to := range r.Allow {
			if !layers[to] {
				return fmt.Errorf("architecture rule from '%s' allows unknown layer '%s'", r.From, to)
			}
		}
	}
	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("analysis", config.Analysis)
	v.Set("style", config.Style)
	v.Set("output", config.Output)
	v.Set("completion", config.Completion)
	v.Set("logging", config.Logging)
	v.Set("architecture", config.Architecture)

	return v.WriteConfig()
}
