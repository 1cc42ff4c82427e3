package service

import (
	"context"
	"log/slog"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/analyzer"
	"github.com/ludo-technologies/srcscan/internal/lang"
)

// StyleServiceImpl profiles the code style of each file and scores the tree
type StyleServiceImpl struct {
	opts serviceOptions
}

// NewStyleService creates a new style analysis service
func NewStyleService(opts ...Option) *StyleServiceImpl {
	return &StyleServiceImpl{opts: buildOptions(opts)}
}

// StyleOptionsFromRequest maps request thresholds onto detector options
func StyleOptionsFromRequest(req domain.StyleRequest) analyzer.StyleOptions {
	return analyzer.StyleOptions{
		LineLimit:       req.LineLimit,
		SmallFileLines:  req.SmallFileLines,
		NamingThreshold: req.NamingThreshold,
	}
}

// Analyze builds per-file style profiles and aggregates them
func (s *StyleServiceImpl) Analyze(ctx context.Context, req domain.StyleRequest) (*domain.StyleResponse, error) {
	s.opts.cache.PurgeStale()
	set, err := s.opts.walker.CollectFiles(req.ScanOptions)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, f := range set.Files {
		if analyzer.IsStyleLanguage(lang.Detect(f)) {
			files = append(files, f)
		}
	}

	styleOpts := StyleOptionsFromRequest(req)
	profile := func(_ context.Context, path string) (*domain.StyleProfile, error) {
		return s.profile(path, styleOpts)
	}
	results, err := RunFiles(ctx, s.opts.runner(req.Parallel), files, profile)
	if err != nil {
		return nil, domain.NewAnalysisError("style analysis cancelled", err)
	}

	profiles := make(map[string]*domain.StyleProfile, len(results))
	for _, r := range results {
		if r.Err != nil {
			s.opts.logger.Debug("skipping unreadable file", slog.String("path", r.Path), slog.Any("error", r.Err))
			continue
		}
		profiles[r.Path] = r.Value
	}

	analysis := analyzer.AggregateStyle(profiles, styleOpts)
	resp := &domain.StyleResponse{
		Analysis: analysis,
		Summary:  SummarizeStyle(analysis),
	}
	resp.RunID, resp.GeneratedAt, resp.Version = reportStamp()
	return resp, nil
}

func (s *StyleServiceImpl) profile(path string, opts analyzer.StyleOptions) (*domain.StyleProfile, error) {
	if p, ok := s.opts.cache.Style(path, opts); ok {
		return p, nil
	}
	content, mt, err := s.opts.cache.LoadContent(path)
	if err != nil {
		return nil, err
	}
	p := analyzer.BuildStyleProfile(content, lang.Detect(path), opts)
	s.opts.cache.PutStyle(path, mt, opts, p)
	return p, nil
}

// SummarizeStyle counts inconsistencies per severity
func SummarizeStyle(a *domain.CodeStyleAnalysis) domain.StyleSummary {
	summary := domain.StyleSummary{
		FilesAnalyzed:    len(a.FileProfiles),
		Inconsistencies:  len(a.Inconsistencies),
		BySeverity:       make(map[domain.Severity]int),
		ConsistencyScore: a.ConsistencyScore,
	}
	for _, inc := range a.Inconsistencies {
		summary.BySeverity[inc.Severity]++
	}
	return summary
}
