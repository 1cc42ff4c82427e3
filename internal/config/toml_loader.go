package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/srcscan/domain"
)

// ConfigFileName is the dedicated project configuration file
const ConfigFileName = ".srcscan.toml"

// SrcscanTomlConfig represents the structure of .srcscan.toml.
// Pointer fields distinguish unset keys from zero values.
type SrcscanTomlConfig struct {
	Analysis     TomlAnalysisConfig     `toml:"analysis"`
	Style        TomlStyleConfig        `toml:"style"`
	Output       TomlOutputConfig       `toml:"output"`
	Completion   TomlCompletionConfig   `toml:"completion"`
	Logging      TomlLoggingConfig      `toml:"logging"`
	Architecture TomlArchitectureConfig `toml:"architecture"`
}

type TomlAnalysisConfig struct {
	IncludePatterns  []string `toml:"include_patterns"`
	ExcludePatterns  []string `toml:"exclude_patterns"`
	Parallel         *bool    `toml:"parallel"`
	RespectGitignore *bool    `toml:"respect_gitignore"`
	IncludeTests     *bool    `toml:"include_tests"`
	MaxFileSize      *int64   `toml:"max_file_size"`
}

type TomlStyleConfig struct {
	LineLimit          *int     `toml:"line_limit"`
	SmallFileLines     *int     `toml:"small_file_lines"`
	NamingThreshold    *float64 `toml:"naming_threshold"`
	MaxInconsistencies *int     `toml:"max_inconsistencies"`
}

type TomlOutputConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
}

type TomlCompletionConfig struct {
	Endpoint       string `toml:"endpoint"`
	BatchModel     string `toml:"batch_model"`
	FinalModel     string `toml:"final_model"`
	APIKeyEnv      string `toml:"api_key_env"`
	TimeoutSeconds *int   `toml:"timeout_seconds"`
}

type TomlLoggingConfig struct {
	Level string `toml:"level"`
}

type TomlArchitectureConfig struct {
	Layers []domain.ArchitectureLayer `toml:"layers"`
	Rules  []domain.ArchitectureRule  `toml:"rules"`
}

// TomlConfigLoader handles .srcscan.toml discovery and loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig finds .srcscan.toml from startDir upward and merges it over
// the defaults. Defaults are returned when no file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(path)
}

// LoadFile parses one TOML file and merges it over the defaults
func (l *TomlConfigLoader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := l.parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

func (l *TomlConfigLoader) parse(data []byte) (*Config, error) {
	var file SrcscanTomlConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	l.merge(cfg, &file)
	return cfg, nil
}

// FindConfigFile walks up the directory tree to find .srcscan.toml
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func (l *TomlConfigLoader) merge(cfg *Config, file *SrcscanTomlConfig) {
	a := file.Analysis
	if a.IncludePatterns != nil {
		cfg.Analysis.IncludePatterns = a.IncludePatterns
	}
	if a.ExcludePatterns != nil {
		cfg.Analysis.ExcludePatterns = a.ExcludePatterns
	}
	cfg.Analysis.Parallel = BoolValue(a.Parallel, cfg.Analysis.Parallel)
	cfg.Analysis.RespectGitignore = BoolValue(a.RespectGitignore, cfg.Analysis.RespectGitignore)
	cfg.Analysis.IncludeTests = BoolValue(a.IncludeTests, cfg.Analysis.IncludeTests)
	if a.MaxFileSize != nil {
		cfg.Analysis.MaxFileSize = *a.MaxFileSize
	}

	s := file.Style
	if s.LineLimit != nil {
		cfg.Style.LineLimit = *s.LineLimit
	}
	if s.SmallFileLines != nil {
		cfg.Style.SmallFileLines = *s.SmallFileLines
	}
	if s.NamingThreshold != nil {
		cfg.Style.NamingThreshold = *s.NamingThreshold
	}
	if s.MaxInconsistencies != nil {
		cfg.Style.MaxInconsistencies = *s.MaxInconsistencies
	}

	cfg.Output.Format = stringOr(file.Output.Format, cfg.Output.Format)
	cfg.Output.Directory = stringOr(file.Output.Directory, cfg.Output.Directory)

	c := file.Completion
	cfg.Completion.Endpoint = stringOr(c.Endpoint, cfg.Completion.Endpoint)
	cfg.Completion.BatchModel = stringOr(c.BatchModel, cfg.Completion.BatchModel)
	cfg.Completion.FinalModel = stringOr(c.FinalModel, cfg.Completion.FinalModel)
	cfg.Completion.APIKeyEnv = stringOr(c.APIKeyEnv, cfg.Completion.APIKeyEnv)
	if c.TimeoutSeconds != nil {
		cfg.Completion.TimeoutSeconds = *c.TimeoutSeconds
	}

	cfg.Logging.Level = stringOr(file.Logging.Level, cfg.Logging.Level)

	if len(file.Architecture.Layers) > 0 {
		cfg.Architecture.Layers = file.Architecture.Layers
		cfg.Architecture.Rules = file.Architecture.Rules
	}
}

// BoolValue dereferences b, falling back to defaultVal when unset
func BoolValue(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
