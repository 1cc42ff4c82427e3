package analyzer

import (
	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/lang"
	"github.com/ludo-technologies/srcscan/internal/scanner"
)

// MeasureFile counts code, blank and comment lines of one file
func MeasureFile(path, content string) domain.FileMetrics {
	l := lang.Detect(path)
	code, blank, comment := scanner.CountLines(content, lang.CommentSyntaxFor(l))
	return domain.FileMetrics{
		Path:         path,
		Language:     l.String(),
		LinesOfCode:  code,
		BlankLines:   blank,
		CommentLines: comment,
		IsTestFile:   lang.IsTestFile(path),
	}
}
