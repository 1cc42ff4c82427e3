package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

type stubMetrics struct{ err error }

func (s stubMetrics) Analyze(context.Context, domain.MetricsRequest) (*domain.MetricsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	agg := domain.NewAggregateMetrics()
	agg.Add(domain.FileMetrics{Language: "Rust", LinesOfCode: 90, CommentLines: 10})
	return &domain.MetricsResponse{Aggregate: agg}, nil
}

type stubDeps struct{}

func (stubDeps) Analyze(context.Context, domain.DependencyRequest) (*domain.DependencyResponse, error) {
	return &domain.DependencyResponse{Summary: domain.DependencySummary{Cycles: 2}}, nil
}

type stubStyle struct{}

func (stubStyle) Analyze(_ context.Context, req domain.StyleRequest) (*domain.StyleResponse, error) {
	return &domain.StyleResponse{Summary: domain.StyleSummary{ConsistencyScore: 0.5, Inconsistencies: 7}}, nil
}

func TestRunService_CombinesAnalyses(t *testing.T) {
	svc := NewRunServiceWith(stubMetrics{}, stubDeps{}, stubStyle{})
	resp, err := svc.Run(context.Background(), domain.RunRequest{
		EnableMetrics: true, EnableDeps: true, EnableStyle: true,
		ScanOptions: domain.ScanOptions{Parallel: true},
	})
	require.NoError(t, err)

	s := resp.Summary
	assert.Equal(t, 1, s.TotalFiles)
	assert.Equal(t, 90, s.LinesOfCode)
	assert.InDelta(t, 10.0, s.CommentRatio, 1e-9)
	assert.Equal(t, 2, s.Cycles)
	assert.Equal(t, 7, s.Inconsistencies)
	// 100 - 2*CyclePenalty - 0.5*MaxStylePenalty
	assert.Equal(t, 100-2*domain.CyclePenalty-domain.MaxStylePenalty/2, s.HealthScore)
	assert.NotEmpty(t, resp.RunID)
}

func TestRunService_DisabledAnalysesAreSkipped(t *testing.T) {
	svc := NewRunServiceWith(stubMetrics{err: errors.New("must not run")}, stubDeps{}, stubStyle{})
	resp, err := svc.Run(context.Background(), domain.RunRequest{EnableDeps: true})
	require.NoError(t, err)
	assert.Nil(t, resp.Metrics)
	assert.Nil(t, resp.Style)
	assert.False(t, resp.Summary.MetricsEnabled)
	assert.Equal(t, 100-2*domain.CyclePenalty, resp.Summary.HealthScore)
}

func TestRunService_PropagatesErrors(t *testing.T) {
	svc := NewRunServiceWith(stubMetrics{err: domain.NewAnalysisError("broken", nil)}, stubDeps{}, stubStyle{})
	_, err := svc.Run(context.Background(), domain.RunRequest{EnableMetrics: true, EnableStyle: true})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeAnalysisError))

	_, err = svc.Run(context.Background(), domain.RunRequest{})
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
}

func TestRunService_RealTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.js", "import b from './b.js';\n// note\nexport const a = 1;\n")
	writeFile(t, root, "src/b.js", "import a from './a.js';\nexport const b = 2;\n")

	resp, err := NewRunService().Run(context.Background(), domain.RunRequest{
		ScanOptions:   domain.ScanOptions{Paths: []string{root}},
		EnableMetrics: true, EnableDeps: true, EnableStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Metrics.Aggregate.TotalFiles())
	assert.Equal(t, 1, resp.Summary.Cycles)
	assert.Equal(t, 2, resp.Style.Summary.FilesAnalyzed)
	assert.NotEmpty(t, resp.Summary.Grade)
}
