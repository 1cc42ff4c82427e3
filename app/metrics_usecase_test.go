package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

type mockMetricsService struct {
	mock.Mock
}

func (m *mockMetricsService) Analyze(ctx context.Context, req domain.MetricsRequest) (*domain.MetricsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsResponse), args.Error(1)
}

type mockMetricsFormatter struct {
	mock.Mock
}

func (m *mockMetricsFormatter) Write(resp *domain.MetricsResponse, format domain.OutputFormat, w io.Writer) error {
	args := m.Called(resp, format, w)
	if s := args.String(1); s != "" {
		_, _ = io.WriteString(w, s)
	}
	return args.Error(0)
}

func TestMetricsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	resp := &domain.MetricsResponse{Aggregate: &domain.AggregateMetrics{}}

	t.Run("writes formatted report", func(t *testing.T) {
		service := &mockMetricsService{}
		formatter := &mockMetricsFormatter{}
		out := &recordingWriter{}
		req := domain.MetricsRequest{
			ScanOptions:  domain.ScanOptions{Paths: []string{"src"}},
			OutputFormat: domain.OutputFormatCSV,
			OutputWriter: &bytes.Buffer{},
		}
		service.On("Analyze", ctx, req).Return(resp, nil)
		formatter.On("Write", resp, domain.OutputFormatCSV, mock.Anything).Return(nil, "path,language\n")

		uc, err := NewMetricsUseCaseBuilder().WithService(service).WithFormatter(formatter).WithOutputWriter(out).Build()
		require.NoError(t, err)
		require.NoError(t, uc.Execute(ctx, req))

		assert.Equal(t, "path,language\n", out.buf.String())
		service.AssertExpectations(t)
	})

	t.Run("missing destination", func(t *testing.T) {
		service := &mockMetricsService{}
		uc, err := NewMetricsUseCaseBuilder().WithService(service).WithFormatter(&mockMetricsFormatter{}).Build()
		require.NoError(t, err)
		err = uc.Execute(ctx, domain.MetricsRequest{ScanOptions: domain.ScanOptions{Paths: []string{"."}}})
		assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
		service.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("cancellation surfaces as analysis error", func(t *testing.T) {
		service := &mockMetricsService{}
		service.On("Analyze", ctx, mock.Anything).Return(nil, domain.NewAnalysisError("metrics analysis cancelled", context.Canceled))
		uc, err := NewMetricsUseCaseBuilder().WithService(service).WithFormatter(&mockMetricsFormatter{}).Build()
		require.NoError(t, err)
		err = uc.Execute(ctx, domain.MetricsRequest{
			ScanOptions:  domain.ScanOptions{Paths: []string{"."}},
			OutputWriter: &bytes.Buffer{},
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, domain.HasCode(err, domain.ErrCodeAnalysisError))
	})
}
