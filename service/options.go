package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/logging"
	"github.com/ludo-technologies/srcscan/internal/version"
)

// Option configures the analysis services
type Option func(*serviceOptions)

type serviceOptions struct {
	logger   *slog.Logger
	cache    *AnalysisCache
	progress domain.ProgressManager
	walker   *FileWalker
}

// WithLogger sets the logger for per-file diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(o *serviceOptions) { o.logger = l }
}

// WithCache shares an analysis cache between services
func WithCache(c *AnalysisCache) Option {
	return func(o *serviceOptions) { o.cache = c }
}

// WithProgress reports per-file progress
func WithProgress(pm domain.ProgressManager) Option {
	return func(o *serviceOptions) { o.progress = pm }
}

func buildOptions(opts []Option) serviceOptions {
	o := serviceOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrDiscard(o.logger)
	if o.cache == nil {
		o.cache = NewAnalysisCache()
	}
	if o.walker == nil {
		o.walker = NewFileWalker(o.logger)
	}
	return o
}

func (o serviceOptions) runner(parallel bool) *FileRunner {
	r := NewFileRunner(parallel)
	if o.progress != nil {
		r.WithProgress(o.progress)
	}
	return r
}

// reportStamp returns the run identifier, timestamp and version stamped on every report
func reportStamp() (runID, generatedAt, ver string) {
	return uuid.NewString(), time.Now().Format(time.RFC3339), version.Version
}
