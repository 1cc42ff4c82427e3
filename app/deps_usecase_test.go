package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

type mockDependencyService struct {
	mock.Mock
}

func (m *mockDependencyService) Analyze(ctx context.Context, req domain.DependencyRequest) (*domain.DependencyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DependencyResponse), args.Error(1)
}

type mockDepsFormatter struct {
	mock.Mock
}

func (m *mockDepsFormatter) Write(resp *domain.DependencyResponse, format domain.OutputFormat, focus string, w io.Writer) error {
	args := m.Called(resp, format, focus, w)
	return args.Error(0)
}

func TestDepsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	resp := &domain.DependencyResponse{Summary: domain.DependencySummary{Nodes: 2, Edges: 1}}

	t.Run("successful analysis", func(t *testing.T) {
		service := &mockDependencyService{}
		formatter := &mockDepsFormatter{}
		out := &recordingWriter{}
		req := domain.DependencyRequest{
			ScanOptions:  domain.ScanOptions{Paths: []string{"."}},
			OutputFormat: domain.OutputFormatMermaid,
			OutputWriter: &bytes.Buffer{},
			Focus:        "core",
		}
		service.On("Analyze", ctx, req).Return(resp, nil)
		formatter.On("Write", resp, domain.OutputFormatMermaid, "core", mock.Anything).Return(nil)

		uc, err := NewDepsUseCaseBuilder().
			WithService(service).
			WithFormatter(formatter).
			WithOutputWriter(out).
			Build()
		require.NoError(t, err)

		require.NoError(t, uc.Execute(ctx, req))
		assert.True(t, out.called)
		assert.Equal(t, domain.OutputFormatMermaid, out.lastFormat)
		service.AssertExpectations(t)
		formatter.AssertExpectations(t)
	})

	t.Run("empty paths rejected", func(t *testing.T) {
		uc := NewDepsUseCase(&mockDependencyService{}, &mockDepsFormatter{})
		err := uc.Execute(ctx, domain.DependencyRequest{OutputWriter: &bytes.Buffer{}})
		assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
	})

	t.Run("focus requires a diagram format", func(t *testing.T) {
		uc := NewDepsUseCase(&mockDependencyService{}, &mockDepsFormatter{})
		err := uc.Execute(ctx, domain.DependencyRequest{
			ScanOptions:  domain.ScanOptions{Paths: []string{"."}},
			OutputFormat: domain.OutputFormatJSON,
			OutputWriter: &bytes.Buffer{},
			Focus:        "core",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "focus")
	})

	t.Run("invalid architecture rejected before analysis", func(t *testing.T) {
		service := &mockDependencyService{}
		uc := NewDepsUseCase(service, &mockDepsFormatter{})
		err := uc.Execute(ctx, domain.DependencyRequest{
			ScanOptions:  domain.ScanOptions{Paths: []string{"."}},
			OutputWriter: &bytes.Buffer{},
			Architecture: &domain.ArchitectureConfigSpec{
				Layers: []domain.ArchitectureLayer{{Name: "core", Paths: []string{"core/**"}}},
				Rules:  []domain.ArchitectureRule{{From: "core", Allow: []string{"ghost"}}},
			},
		})
		assert.True(t, domain.HasCode(err, domain.ErrCodeConfigError))
		service.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("service domain error keeps its code", func(t *testing.T) {
		service := &mockDependencyService{}
		service.On("Analyze", ctx, mock.Anything).Return(nil, domain.NewPathNotFoundError("missing"))
		uc := NewDepsUseCase(service, &mockDepsFormatter{})
		err := uc.Execute(ctx, domain.DependencyRequest{
			ScanOptions:  domain.ScanOptions{Paths: []string{"missing"}},
			OutputWriter: &bytes.Buffer{},
		})
		assert.True(t, domain.HasCode(err, domain.ErrCodeFileNotFound))
	})

	t.Run("plain service error is wrapped", func(t *testing.T) {
		service := &mockDependencyService{}
		service.On("Analyze", ctx, mock.Anything).Return(nil, errors.New("boom"))
		uc := NewDepsUseCase(service, &mockDepsFormatter{})
		err := uc.Execute(ctx, domain.DependencyRequest{
			ScanOptions:  domain.ScanOptions{Paths: []string{"."}},
			OutputWriter: &bytes.Buffer{},
		})
		assert.True(t, domain.HasCode(err, domain.ErrCodeAnalysisError))
	})
}

func TestDepsUseCaseBuilder_MissingDependencies(t *testing.T) {
	_, err := NewDepsUseCaseBuilder().WithService(&mockDependencyService{}).Build()
	assert.Error(t, err)
}
