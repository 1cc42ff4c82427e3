package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/version"
)

// RunServiceImpl runs metrics, dependency and style analysis over one scan,
// sharing a single analysis cache between them
type RunServiceImpl struct {
	metrics domain.MetricsService
	deps    domain.DependencyService
	style   domain.StyleService
	timeout time.Duration
}

// NewRunService creates a run service whose analyses share one cache
func NewRunService(opts ...Option) *RunServiceImpl {
	o := buildOptions(opts)
	shared := []Option{WithLogger(o.logger), WithCache(o.cache)}
	return &RunServiceImpl{
		metrics: NewMetricsService(shared...),
		deps:    NewDependencyService(shared...),
		style:   NewStyleService(shared...),
		timeout: DefaultRunTimeout,
	}
}

// NewRunServiceWith wires explicit analysis services
func NewRunServiceWith(metrics domain.MetricsService, deps domain.DependencyService, style domain.StyleService) *RunServiceImpl {
	return &RunServiceImpl{metrics: metrics, deps: deps, style: style, timeout: DefaultRunTimeout}
}

// SetTimeout bounds the whole run
func (s *RunServiceImpl) SetTimeout(d time.Duration) { s.timeout = d }

// Run executes the enabled analyses and scores the combined result
func (s *RunServiceImpl) Run(ctx context.Context, req domain.RunRequest) (*domain.RunResponse, error) {
	if !req.EnableMetrics && !req.EnableDeps && !req.EnableStyle {
		return nil, domain.NewInvalidInputError("no analysis enabled", nil)
	}
	start := time.Now()
	resp := &domain.RunResponse{}

	tasks := []domain.ExecutableTask{
		NewSimpleTask("metrics", req.EnableMetrics, func(ctx context.Context) (interface{}, error) {
			r, err := s.metrics.Analyze(ctx, domain.MetricsRequest{ScanOptions: req.ScanOptions})
			resp.Metrics = r
			return r, err
		}),
		NewSimpleTask("deps", req.EnableDeps, func(ctx context.Context) (interface{}, error) {
			r, err := s.deps.Analyze(ctx, domain.DependencyRequest{ScanOptions: req.ScanOptions, Architecture: req.Architecture})
			resp.Dependencies = r
			return r, err
		}),
		NewSimpleTask("style", req.EnableStyle, func(ctx context.Context) (interface{}, error) {
			r, err := s.style.Analyze(ctx, domain.StyleRequest{
				ScanOptions:     req.ScanOptions,
				LineLimit:       req.LineLimit,
				SmallFileLines:  req.SmallFileLines,
				NamingThreshold: req.NamingThreshold,
			})
			resp.Style = r
			return r, err
		}),
	}

	executor := NewParallelExecutor()
	executor.SetTimeout(s.timeout)
	if !req.Parallel {
		executor.SetMaxConcurrency(1)
	}
	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, err
	}

	resp.Summary = SummarizeRun(resp)
	if err := resp.Summary.CalculateHealthScore(); err != nil {
		return nil, domain.NewInternalError("failed to score run", err)
	}
	resp.RunID = uuid.NewString()
	resp.GeneratedAt = time.Now()
	resp.Duration = time.Since(start).Milliseconds()
	resp.Version = version.Version
	return resp, nil
}

// SummarizeRun collects the headline numbers of every analysis that ran
func SummarizeRun(resp *domain.RunResponse) domain.RunSummary {
	var s domain.RunSummary
	if m := resp.Metrics; m != nil && m.Aggregate != nil {
		s.MetricsEnabled = true
		s.TotalFiles = m.Aggregate.TotalFiles()
		s.LinesOfCode = m.Aggregate.Total.LinesOfCode
		if lines := m.Aggregate.Total.LinesOfCode + m.Aggregate.Total.CommentLines; lines > 0 {
			s.CommentRatio = float64(m.Aggregate.Total.CommentLines) * 100 / float64(lines)
		}
	}
	if d := resp.Dependencies; d != nil {
		s.DepsEnabled = true
		s.Cycles = d.Summary.Cycles
	}
	if st := resp.Style; st != nil {
		s.StyleEnabled = true
		s.ConsistencyScore = st.Summary.ConsistencyScore
		s.Inconsistencies = st.Summary.Inconsistencies
	}
	return s
}
