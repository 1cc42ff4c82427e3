package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
)

// CommentFormats lists the formats the comment commands accept
var CommentFormats = []domain.OutputFormat{
	domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML,
}

// CommentFormatterImpl implements domain.CommentOutputFormatter
type CommentFormatterImpl struct{}

func NewCommentFormatter() *CommentFormatterImpl { return &CommentFormatterImpl{} }

func (f *CommentFormatterImpl) Write(resp *domain.CommentResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := io.WriteString(w, f.formatText(resp))
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *CommentFormatterImpl) formatText(resp *domain.CommentResponse) string {
	var b strings.Builder
	if resp.DryRun {
		b.WriteString("Dry run: no files were modified\n\n")
	}
	for _, fr := range resp.Files {
		if !fr.Modified {
			continue
		}
		verb := "Removed"
		if resp.DryRun {
			verb = "Would remove"
		}
		fmt.Fprintf(&b, "%s %d comments from %s\n", verb, fr.Removed, fr.Path)
	}
	if resp.DryRun {
		for _, d := range resp.Deleted {
			fmt.Fprintf(&b, "  %s:%d: %s\n", d.File, d.Line, strings.TrimSpace(d.Comment))
		}
	}
	fmt.Fprintf(&b, "\n%d files processed, %d changed, %d comments removed (%s policy)\n",
		len(resp.Files), resp.FilesChanged, resp.TotalRemoved, resp.Policy)
	b.WriteString(NewFormatUtils().FormatWarningsSection(resp.Warnings))
	return b.String()
}
