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

type mockRunService struct {
	mock.Mock
}

func (m *mockRunService) Run(ctx context.Context, req domain.RunRequest) (*domain.RunResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunResponse), args.Error(1)
}

type mockRunFormatter struct {
	mock.Mock
}

func (m *mockRunFormatter) Write(resp *domain.RunResponse, format domain.OutputFormat, w io.Writer) error {
	return m.Called(resp, format, w).Error(0)
}

func TestRunUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	req := domain.RunRequest{
		ScanOptions:   domain.ScanOptions{Paths: []string{"."}, Parallel: true},
		OutputFormat:  domain.OutputFormatJSON,
		OutputWriter:  &bytes.Buffer{},
		EnableMetrics: true,
		EnableDeps:    true,
	}

	t.Run("returns the response it wrote", func(t *testing.T) {
		resp := &domain.RunResponse{Summary: domain.RunSummary{TotalFiles: 4, HealthScore: 90}}
		service := &mockRunService{}
		formatter := &mockRunFormatter{}
		service.On("Run", ctx, req).Return(resp, nil)
		formatter.On("Write", resp, domain.OutputFormatJSON, mock.Anything).Return(nil)

		uc, err := NewRunUseCaseBuilder().WithService(service).WithFormatter(formatter).WithOutputWriter(&recordingWriter{}).Build()
		require.NoError(t, err)
		got, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Same(t, resp, got)
	})

	t.Run("nothing enabled", func(t *testing.T) {
		r := req
		r.EnableMetrics, r.EnableDeps = false, false
		uc, err := NewRunUseCaseBuilder().WithService(&mockRunService{}).WithFormatter(&mockRunFormatter{}).Build()
		require.NoError(t, err)
		_, err = uc.Execute(ctx, r)
		assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
	})

	t.Run("architecture ignored when deps disabled", func(t *testing.T) {
		r := req
		r.EnableDeps = false
		r.Architecture = &domain.ArchitectureConfigSpec{Layers: []domain.ArchitectureLayer{{}}}
		resp := &domain.RunResponse{}
		service := &mockRunService{}
		formatter := &mockRunFormatter{}
		service.On("Run", ctx, r).Return(resp, nil)
		formatter.On("Write", resp, domain.OutputFormatJSON, mock.Anything).Return(nil)

		uc, err := NewRunUseCaseBuilder().WithService(service).WithFormatter(formatter).WithOutputWriter(&recordingWriter{}).Build()
		require.NoError(t, err)
		_, err = uc.Execute(ctx, r)
		assert.NoError(t, err)
	})

	t.Run("formatter failure surfaces", func(t *testing.T) {
		resp := &domain.RunResponse{}
		service := &mockRunService{}
		formatter := &mockRunFormatter{}
		service.On("Run", ctx, req).Return(resp, nil)
		formatter.On("Write", resp, domain.OutputFormatJSON, mock.Anything).Return(domain.NewOutputError("encode failed", nil))

		uc, err := NewRunUseCaseBuilder().WithService(service).WithFormatter(formatter).WithOutputWriter(&recordingWriter{}).Build()
		require.NoError(t, err)
		_, err = uc.Execute(ctx, req)
		assert.True(t, domain.HasCode(err, domain.ErrCodeOutputError))
	})
}
