package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

const spacedRust = "fn compute(a: i32) -> i32 {\n    let total = a + 1;\n    let other = total * 2;\n    other\n}\n"

func styleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/a.rs", spacedRust)
	writeFile(t, root, "src/b.rs", spacedRust)
	writeFile(t, root, "src/c.rs", spacedRust)
	writeFile(t, root, "src/d.rs", strings.ReplaceAll(spacedRust, "    ", "\t"))
	writeFile(t, root, "Dockerfile", "FROM scratch\n")
	return root
}

func TestStyleService_FlagsOddFileOut(t *testing.T) {
	root := styleTree(t)
	resp, err := NewStyleService().Analyze(context.Background(), domain.StyleRequest{
		ScanOptions: domain.ScanOptions{Paths: []string{root}},
	})
	require.NoError(t, err)

	a := resp.Analysis
	assert.Len(t, a.FileProfiles, 4, "non-style files are not profiled")
	assert.Equal(t, domain.Spaces(4), a.GlobalProfile.Indentation)
	assert.Less(t, a.ConsistencyScore, 1.0)

	odd := filepath.Join(root, "src", "d.rs")
	var found bool
	for _, inc := range a.Inconsistencies {
		if inc.FilePath == odd && inc.Description == "Inconsistent indentation: expected 4 spaces, found tabs" {
			found = true
			assert.Equal(t, domain.SeverityMedium, inc.Severity)
		}
	}
	assert.True(t, found, "tab-indented file should be reported")

	assert.Equal(t, 4, resp.Summary.FilesAnalyzed)
	assert.Equal(t, len(a.Inconsistencies), resp.Summary.Inconsistencies)
	assert.Equal(t, 1, resp.Summary.BySeverity[domain.SeverityMedium])
}

func TestStyleService_ParallelMatchesSequential(t *testing.T) {
	root := styleTree(t)
	run := func(parallel bool) *domain.StyleResponse {
		resp, err := NewStyleService().Analyze(context.Background(), domain.StyleRequest{
			ScanOptions: domain.ScanOptions{Paths: []string{root}, Parallel: parallel},
		})
		require.NoError(t, err)
		return resp
	}
	seq, par := run(false), run(true)
	assert.Equal(t, seq.Analysis, par.Analysis)
	assert.Equal(t, seq.Summary, par.Summary)
}

func TestStyleService_SharedCacheHonorsLineLimit(t *testing.T) {
	root := t.TempDir()
	long := "    let value = compute_something(first_argument, second_argument, third);\n"
	writeFile(t, root, "a.rs", "fn main() {\n"+long+long+long+"}\n")

	svc := NewStyleService(WithCache(NewAnalysisCache()))
	overLimit := func(limit int) int {
		resp, err := svc.Analyze(context.Background(), domain.StyleRequest{
			ScanOptions: domain.ScanOptions{Paths: []string{root}},
			LineLimit:   limit,
		})
		require.NoError(t, err)
		p := resp.Analysis.FileProfiles[filepath.Join(root, "a.rs")]
		require.NotNil(t, p)
		return p.LineMetrics.OverLimitCount
	}

	assert.Zero(t, overLimit(100))
	assert.Equal(t, 3, overLimit(40))
	assert.Zero(t, overLimit(100))
}

func TestStyleService_EmptyTree(t *testing.T) {
	resp, err := NewStyleService().Analyze(context.Background(), domain.StyleRequest{
		ScanOptions: domain.ScanOptions{Paths: []string{t.TempDir()}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.Summary.ConsistencyScore)
	assert.Empty(t, resp.Analysis.Inconsistencies)
}

func TestStyleOptionsFromRequest(t *testing.T) {
	opts := StyleOptionsFromRequest(domain.StyleRequest{LineLimit: 80, NamingThreshold: 0.9})
	assert.Equal(t, 80, opts.LineLimit)
	assert.Zero(t, opts.SmallFileLines)
	assert.Equal(t, 0.9, opts.NamingThreshold)
}
