package mcp

import (
	"log/slog"
	"path/filepath"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/config"
	"github.com/ludo-technologies/srcscan/internal/logging"
	"github.com/ludo-technologies/srcscan/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
// The analysis cache outlives single tool calls, so repeated requests over
// an unchanged tree only re-read files whose modification time moved.
type Dependencies struct {
	config     *config.Config
	configPath string
	cache      *service.AnalysisCache
	logger     *slog.Logger
}

// NewDependencies constructs the dependency set. A nil cfg resolves
// configuration per request from configPath or the analyzed path.
func NewDependencies(cfg *config.Config, configPath string, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		config:     cfg,
		configPath: configPath,
		cache:      service.NewAnalysisCache(),
		logger:     logging.OrDiscard(logger),
	}
}

// configFor returns the configuration that applies to an analysis of path
func (d *Dependencies) configFor(path string) (*config.Config, error) {
	if d.config != nil {
		return d.config, nil
	}
	return config.LoadConfigWithTarget(d.configPath, path)
}

func (d *Dependencies) serviceOptions() []service.Option {
	return []service.Option{service.WithLogger(d.logger), service.WithCache(d.cache)}
}

func (d *Dependencies) scanOptions(path string, cfg *config.Config) domain.ScanOptions {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	a := cfg.Analysis
	return domain.ScanOptions{
		Paths:            []string{abs},
		IncludePatterns:  a.IncludePatterns,
		ExcludePatterns:  a.ExcludePatterns,
		RespectGitignore: a.RespectGitignore,
		IncludeTests:     a.IncludeTests,
		Parallel:         a.Parallel,
		MaxFileSize:      a.MaxFileSize,
	}
}

func (d *Dependencies) metricsService() domain.MetricsService {
	return service.NewMetricsService(d.serviceOptions()...)
}

func (d *Dependencies) dependencyService() domain.DependencyService {
	return service.NewDependencyService(d.serviceOptions()...)
}

func (d *Dependencies) styleService() domain.StyleService {
	return service.NewStyleService(d.serviceOptions()...)
}

func (d *Dependencies) runService() domain.RunService {
	return service.NewRunService(d.serviceOptions()...)
}
