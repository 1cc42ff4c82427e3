package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/analyzer"
	"github.com/ludo-technologies/srcscan/internal/lang"
)

// DefaultAuditFile is where the delete policy exports removed comments
const DefaultAuditFile = "deleted_comments.json"

// CommentServiceImpl strips line comments from the files of a tree
type CommentServiceImpl struct {
	opts serviceOptions
}

// NewCommentService creates a new comment removal service
func NewCommentService(opts ...Option) *CommentServiceImpl {
	return &CommentServiceImpl{opts: buildOptions(opts)}
}

type strippedFile struct {
	language lang.Language
	result   *analyzer.StripResult
	mode     os.FileMode
}

// Strip applies the request policy to every supported file. Files are only
// rewritten when a comment was removed and the request is not a dry run.
func (s *CommentServiceImpl) Strip(ctx context.Context, req domain.CommentRequest) (*domain.CommentResponse, error) {
	switch req.Policy {
	case domain.CommentPolicyClean, domain.CommentPolicyDelete:
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown comment policy: %q", req.Policy), nil)
	}

	set, err := s.opts.walker.CollectFiles(req.ScanOptions)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range set.Files {
		if analyzer.PolicySupports(req.Policy, lang.Detect(f)) {
			files = append(files, f)
		}
	}

	strip := func(_ context.Context, path string) (strippedFile, error) {
		return s.strip(path, req.Policy)
	}
	results, err := RunFiles(ctx, s.opts.runner(req.Parallel), files, strip)
	if err != nil {
		return nil, domain.NewAnalysisError("comment removal cancelled", err)
	}

	resp := &domain.CommentResponse{
		Policy: req.Policy,
		DryRun: req.DryRun,
		Files:  make([]domain.CommentFileResult, 0, len(results)),
	}
	for _, r := range results {
		if r.Err != nil {
			s.opts.logger.Debug("skipping unreadable file", slog.String("path", r.Path), slog.Any("error", r.Err))
			continue
		}
		res := r.Value.result
		fr := domain.CommentFileResult{Path: r.Path, Language: r.Value.language.String(), Removed: res.Removed}
		if res.Changed() {
			if !req.DryRun {
				if err := os.WriteFile(r.Path, []byte(res.Content), r.Value.mode); err != nil {
					resp.Warnings = append(resp.Warnings, fmt.Sprintf("failed to write %s: %v", r.Path, err))
					s.opts.logger.Warn("failed to rewrite file", slog.String("path", r.Path), slog.Any("error", err))
					resp.Files = append(resp.Files, fr)
					continue
				}
			}
			fr.Modified = true
			resp.FilesChanged++
		}
		resp.TotalRemoved += res.Removed
		resp.Deleted = append(resp.Deleted, res.Deleted...)
		resp.Files = append(resp.Files, fr)
	}

	if req.Policy == domain.CommentPolicyDelete && req.AuditPath != "" && !req.DryRun {
		if err := WriteAudit(req.AuditPath, resp.Deleted); err != nil {
			return nil, err
		}
	}

	resp.RunID, resp.GeneratedAt, _ = reportStamp()
	return resp, nil
}

func (s *CommentServiceImpl) strip(path string, policy domain.CommentPolicy) (strippedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return strippedFile{}, err
	}
	content, _, err := s.opts.cache.LoadContent(path)
	if err != nil {
		return strippedFile{}, err
	}
	l := lang.Detect(path)
	res, err := analyzer.StripComments(path, content, l, policy)
	if err != nil {
		return strippedFile{}, err
	}
	return strippedFile{language: l, result: res, mode: info.Mode().Perm()}, nil
}

// WriteAudit exports deleted comments as a JSON array
func WriteAudit(path string, deleted []domain.DeletedComment) error {
	if deleted == nil {
		deleted = []domain.DeletedComment{}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create audit directory: %s", dir), err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create audit file: %s", path), err)
	}
	defer f.Close()
	return WriteJSON(f, deleted)
}
