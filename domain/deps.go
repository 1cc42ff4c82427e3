package domain

import (
	"context"
	"io"
)

// DependencyRequest represents input for dependency analysis
type DependencyRequest struct {
	ScanOptions

	// Output configuration (used by use case formatting)
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// Focus keeps only nodes whose id contains this substring in diagram output
	Focus string

	// Optional architecture rules for layer validation
	Architecture *ArchitectureConfigSpec
}

// DependencyEdge represents a directed dependency between two files
type DependencyEdge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// DependencyCycle represents one cycle as the ordered list of its nodes
type DependencyCycle struct {
	Modules []string `json:"modules" yaml:"modules"`
}

// DependencySummary contains aggregate stats
type DependencySummary struct {
	Nodes           int `json:"nodes" yaml:"nodes"`
	Edges           int `json:"edges" yaml:"edges"`
	Cycles          int `json:"cycles" yaml:"cycles"`
	FilesAnalyzed   int `json:"files_analyzed" yaml:"files_analyzed"`
	LayerViolations int `json:"layer_violations" yaml:"layer_violations"`
}

// DependencyResponse is the result of dependency analysis
type DependencyResponse struct {
	// Graph
	Nodes  []string          `json:"nodes" yaml:"nodes"`
	Edges  []DependencyEdge  `json:"edges" yaml:"edges"`
	Cycles []DependencyCycle `json:"cycles" yaml:"cycles"`

	// Metadata
	Summary     DependencySummary `json:"summary" yaml:"summary"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	RunID       string            `json:"run_id" yaml:"run_id"`
	GeneratedAt string            `json:"generated_at" yaml:"generated_at"`
	Version     string            `json:"version" yaml:"version"`

	// Optional layer validation
	LayerViolations []LayerViolation `json:"layer_violations_detail,omitempty" yaml:"layer_violations_detail,omitempty"`
}

// DependencyService defines the core business logic for dependency analysis
type DependencyService interface {
	Analyze(ctx context.Context, req DependencyRequest) (*DependencyResponse, error)
}

// DepsOutputFormatter defines the interface for formatting dependency analysis results
type DepsOutputFormatter interface {
	Write(response *DependencyResponse, format OutputFormat, focus string, writer io.Writer) error
}

// ArchitectureConfigSpec represents layer-based architecture rules
type ArchitectureConfigSpec struct {
	Layers []ArchitectureLayer `json:"layers" yaml:"layers" mapstructure:"layers"`
	Rules  []ArchitectureRule  `json:"rules"  yaml:"rules"  mapstructure:"rules"`
}

// ArchitectureLayer defines a logical layer and the path globs belonging to it
type ArchitectureLayer struct {
	Name  string   `json:"name" yaml:"name" mapstructure:"name" toml:"name"`
	Paths []string `json:"paths" yaml:"paths" mapstructure:"paths" toml:"paths"`
}

// ArchitectureRule defines allowed target layers for a given source layer
type ArchitectureRule struct {
	From  string   `json:"from" yaml:"from" mapstructure:"from" toml:"from"`
	Allow []string `json:"allow" yaml:"allow" mapstructure:"allow" toml:"allow"`
}

// LayerViolation represents a dependency that violates layer rules
type LayerViolation struct {
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	FromLayer string `json:"from_layer" yaml:"from_layer"`
	ToLayer   string `json:"to_layer" yaml:"to_layer"`
}
