package service

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCommentService_Clean(t *testing.T) {
	root := t.TempDir()
	rs := writeFile(t, root, "src/lib.rs", "// header\nfn a() {} // trailing\n")
	py := writeFile(t, root, "tool.py", "# keep: clean ignores python\nx = 1\n")

	resp, err := NewCommentService().Strip(context.Background(), domain.CommentRequest{
		ScanOptions: domain.ScanOptions{Paths: []string{root}},
		Policy:      domain.CommentPolicyClean,
	})
	require.NoError(t, err)

	assert.Equal(t, "fn a() {}\n", readFile(t, rs))
	assert.Equal(t, "# keep: clean ignores python\nx = 1\n", readFile(t, py))
	require.Len(t, resp.Files, 1)
	assert.True(t, resp.Files[0].Modified)
	assert.Equal(t, 2, resp.TotalRemoved)
	assert.Equal(t, 1, resp.FilesChanged)
	assert.Empty(t, resp.Deleted)
}

func TestCommentService_DeleteWritesAudit(t *testing.T) {
	root := t.TempDir()
	rs := writeFile(t, root, "main.rs", "fn main() {\n    // explain\n    run(); // why\n}\n")
	py := writeFile(t, root, "m.py", "x = 1  # set x\n")
	audit := filepath.Join(t.TempDir(), "out", DefaultAuditFile)

	resp, err := NewCommentService().Strip(context.Background(), domain.CommentRequest{
		ScanOptions: domain.ScanOptions{Paths: []string{root}},
		Policy:      domain.CommentPolicyDelete,
		AuditPath:   audit,
	})
	require.NoError(t, err)

	assert.Equal(t, "fn main() {\n\n    run();\n}\n", readFile(t, rs))
	assert.Equal(t, "x = 1\n", readFile(t, py))
	assert.Equal(t, 3, resp.TotalRemoved)

	var records []domain.DeletedComment
	require.NoError(t, json.Unmarshal([]byte(readFile(t, audit)), &records))
	require.Len(t, records, 3)
	byFile := map[string]int{}
	for _, r := range records {
		byFile[r.File]++
	}
	assert.Equal(t, 2, byFile[rs])
	assert.Equal(t, 1, byFile[py])
	assert.Contains(t, readFile(t, audit), `"commentRemoved"`)
}

func TestCommentService_DryRun(t *testing.T) {
	root := t.TempDir()
	src := "fn a() {} // trailing\n"
	rs := writeFile(t, root, "a.rs", src)
	audit := filepath.Join(t.TempDir(), DefaultAuditFile)

	resp, err := NewCommentService().Strip(context.Background(), domain.CommentRequest{
		ScanOptions: domain.ScanOptions{Paths: []string{root}},
		Policy:      domain.CommentPolicyDelete,
		DryRun:      true,
		AuditPath:   audit,
	})
	require.NoError(t, err)

	assert.Equal(t, src, readFile(t, rs))
	assert.NoFileExists(t, audit)
	assert.Equal(t, 1, resp.FilesChanged)
	require.Len(t, resp.Deleted, 1)
	assert.Equal(t, "// trailing", resp.Deleted[0].Comment)
}

func TestCommentService_UnknownPolicy(t *testing.T) {
	_, err := NewCommentService().Strip(context.Background(), domain.CommentRequest{
		ScanOptions: domain.ScanOptions{Paths: []string{t.TempDir()}},
		Policy:      "shred",
	})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
}

func TestCommentFormatter_Text(t *testing.T) {
	resp := &domain.CommentResponse{
		Policy: domain.CommentPolicyDelete,
		DryRun: true,
		Files: []domain.CommentFileResult{
			{Path: "a.rs", Removed: 2, Modified: true},
			{Path: "b.rs"},
		},
		FilesChanged: 1,
		TotalRemoved: 2,
		Deleted:      []domain.DeletedComment{{File: "a.rs", Line: 1, Comment: "  // x"}},
	}
	var out bytes.Buffer
	require.NoError(t, NewCommentFormatter().Write(resp, domain.OutputFormatText, &out))
	s := out.String()
	assert.Contains(t, s, "Dry run: no files were modified")
	assert.Contains(t, s, "Would remove 2 comments from a.rs\n")
	assert.Contains(t, s, "  a.rs:1: // x\n")
	assert.Contains(t, s, "2 files processed, 1 changed, 2 comments removed (delete policy)")
}
