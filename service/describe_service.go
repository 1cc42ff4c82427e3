package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/lang"
)

// Describe batching limits
const (
	DescribeBatchSize    = 10
	DescribeMaxFileBytes = 500_000
	DescribeMaxLines     = 1000
)

// DescribeServiceImpl summarizes a tree with a text completer: one prompt per
// batch of files from the same directory, then one prompt over the summaries.
type DescribeServiceImpl struct {
	opts  serviceOptions
	batch domain.TextCompleter
	final domain.TextCompleter
}

// NewDescribeService creates a describe service. final may be nil, in which
// case the batch completer also writes the final description.
func NewDescribeService(batch, final domain.TextCompleter, opts ...Option) *DescribeServiceImpl {
	if final == nil {
		final = batch
	}
	return &DescribeServiceImpl{opts: buildOptions(opts), batch: batch, final: final}
}

type describeFile struct {
	path     string
	language lang.Language
	content  string
	skipped  bool
}

// Describe builds the project description
func (s *DescribeServiceImpl) Describe(ctx context.Context, req domain.DescribeRequest) (*domain.DescribeResponse, error) {
	if s.batch == nil {
		return nil, domain.NewConfigError("no text completion service configured", nil)
	}
	s.opts.cache.PurgeStale()
	set, err := s.opts.walker.CollectFiles(req.ScanOptions)
	if err != nil {
		return nil, err
	}

	results, err := RunFiles(ctx, s.opts.runner(req.Parallel), set.Files, s.load)
	if err != nil {
		return nil, domain.NewAnalysisError("describe cancelled", err)
	}

	resp := &domain.DescribeResponse{}
	var files []describeFile
	for _, r := range results {
		if r.Err != nil {
			s.opts.logger.Debug("skipping unreadable file", slog.String("path", r.Path), slog.Any("error", r.Err))
			resp.FilesSkipped++
			continue
		}
		if r.Value.skipped {
			resp.FilesSkipped++
			continue
		}
		files = append(files, r.Value)
	}
	resp.FilesIncluded = len(files)
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no source files to describe", nil)
	}

	batches := batchFiles(files)
	var summaries []string
	for i, b := range batches {
		names := make([]string, len(b.files))
		for j, f := range b.files {
			names[j] = f.path
		}
		s.opts.logger.Info("summarizing batch",
			slog.Int("batch", i+1), slog.Int("batches", len(batches)),
			slog.Int("files", len(b.files)), slog.String("directory", b.directory))

		text, err := s.batch.Complete(ctx, batchPrompt(b.directory, b.files))
		if err != nil {
			if ctx.Err() != nil {
				return nil, domain.NewAnalysisError("describe cancelled", ctx.Err())
			}
			warning := fmt.Sprintf("batch %d/%d (%s) failed: %v", i+1, len(batches), b.directory, err)
			s.opts.logger.Warn("batch summary failed", slog.Int("batch", i+1), slog.Any("error", err))
			resp.Warnings = append(resp.Warnings, warning)
			continue
		}
		summaries = append(summaries, text)
		resp.Batches = append(resp.Batches, domain.BatchSummary{Directory: b.directory, Files: names, Summary: text})
	}
	if len(summaries) == 0 {
		return nil, domain.NewExternalServiceError("every batch summary failed", nil)
	}

	description, err := s.final.Complete(ctx, finalPrompt(summaries))
	if err != nil {
		return nil, domain.NewExternalServiceError("failed to generate final description", err)
	}
	resp.Description = description
	resp.RunID, resp.GeneratedAt, _ = reportStamp()
	return resp, nil
}

func (s *DescribeServiceImpl) load(_ context.Context, path string) (describeFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return describeFile{}, err
	}
	if info.Size() > DescribeMaxFileBytes {
		return describeFile{path: path, skipped: true}, nil
	}
	content, _, err := s.opts.cache.LoadContent(path)
	if err != nil {
		return describeFile{}, err
	}
	if strings.TrimSpace(content) == "" {
		return describeFile{path: path, skipped: true}, nil
	}
	return describeFile{path: path, language: lang.Detect(path), content: content}, nil
}

type fileBatch struct {
	directory string
	files     []describeFile
}

// batchFiles groups files by parent directory, in sorted directory order,
// splitting directories larger than DescribeBatchSize into chunks
func batchFiles(files []describeFile) []fileBatch {
	byDir := make(map[string][]describeFile)
	for _, f := range files {
		dir := filepath.Dir(f.path)
		byDir[dir] = append(byDir[dir], f)
	}
	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var batches []fileBatch
	for _, dir := range dirs {
		group := byDir[dir]
		for start := 0; start < len(group); start += DescribeBatchSize {
			end := min(start+DescribeBatchSize, len(group))
			batches = append(batches, fileBatch{directory: dir, files: group[start:end]})
		}
	}
	return batches
}

// FormatFileForPrompt renders one file, truncated to DescribeMaxLines lines
func FormatFileForPrompt(path string, l lang.Language, content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) > DescribeMaxLines {
		lines = lines[:DescribeMaxLines]
	}
	name := l.String()
	return fmt.Sprintf("File: %s\nLanguage: %s\n\n```%s\n%s\n```\n",
		path, name, strings.ToLower(name), strings.Join(lines, "\n"))
}

// batchPrompt asks for a summary of one batch of related files
func batchPrompt(directory string, files []describeFile) string {
	texts := make([]string, len(files))
	for i, f := range files {
		texts[i] = FormatFileForPrompt(f.path, f.language, f.content)
	}
	return fmt.Sprintf(`You are an expert software developer analyzing a codebase.
Below are files from the same directory or related functionality in a project.
Analyze these files and provide a concise summary (3-5 paragraphs) about:
1. What functionality this code provides
2. How the files relate to each other
3. Key types, functions and interfaces
4. Design patterns or architectural approaches used
5. Any notable algorithms or techniques

Be specific about what the code does but don't waste words simply listing files.
Focus on explaining the overall purpose and functionality.

Directory: %s

%s`, directory, strings.Join(texts, "\n\n"))
}

// finalPrompt asks for a project overview built from batch summaries
func finalPrompt(summaries []string) string {
	return fmt.Sprintf(`You are an expert software developer creating a clear overview of a codebase
based on the following summarized components. Each separated section represents
the analysis of different parts of the codebase.

Generate a comprehensive but concise description of this project that includes:

1. An overview of the project's purpose and functionality
2. The main components and how they interact
3. The architecture and design patterns used
4. Key technologies and libraries leveraged
5. Notable algorithms or techniques implemented

Do not invent a name for the codebase. Only use a name that appears in the code
itself, such as a package name or documentation. Otherwise refer to it as
'this project'.

Format the description with clear sections and focus on a high-level
understanding that would be useful for new developers joining the project.

Here are the component summaries:

%s`, strings.Join(summaries, "\n\n---\n\n"))
}
