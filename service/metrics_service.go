package service

import (
	"context"
	"log/slog"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/analyzer"
)

// MetricsServiceImpl counts code, comment and blank lines across a tree
type MetricsServiceImpl struct {
	opts serviceOptions
}

// NewMetricsService creates a new metrics service
func NewMetricsService(opts ...Option) *MetricsServiceImpl {
	return &MetricsServiceImpl{opts: buildOptions(opts)}
}

// Analyze walks the requested roots and accumulates per-file line counts
func (s *MetricsServiceImpl) Analyze(ctx context.Context, req domain.MetricsRequest) (*domain.MetricsResponse, error) {
	s.opts.cache.PurgeStale()
	set, err := s.opts.walker.CollectFiles(req.ScanOptions)
	if err != nil {
		return nil, err
	}

	results, err := RunFiles(ctx, s.opts.runner(req.Parallel), set.Files, s.measure)
	if err != nil {
		return nil, domain.NewAnalysisError("metrics analysis cancelled", err)
	}

	agg := domain.NewAggregateMetrics()
	agg.TotalDirectories = set.Directories
	files := make([]domain.FileMetrics, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			s.opts.logger.Debug("skipping unreadable file", slog.String("path", r.Path), slog.Any("error", r.Err))
			continue
		}
		m := r.Value
		m.IsTestFile = isTestPath(set.Roots, r.Path)
		agg.Add(m)
		files = append(files, m)
	}

	runID, generatedAt, ver := reportStamp()
	return &domain.MetricsResponse{
		Files:       files,
		Aggregate:   agg,
		RunID:       runID,
		GeneratedAt: generatedAt,
		Version:     ver,
	}, nil
}

func (s *MetricsServiceImpl) measure(_ context.Context, path string) (domain.FileMetrics, error) {
	if m, ok := s.opts.cache.Metrics(path); ok {
		return m, nil
	}
	content, mt, err := s.opts.cache.LoadContent(path)
	if err != nil {
		return domain.FileMetrics{}, err
	}
	m := analyzer.MeasureFile(path, content)
	s.opts.cache.PutMetrics(path, mt, m)
	return m, nil
}
