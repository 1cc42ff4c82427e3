package app

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

// recordingWriter captures what a use case hands to its ReportWriter
type recordingWriter struct {
	called     bool
	lastWriter io.Writer
	lastPath   string
	lastFormat domain.OutputFormat
	buf        bytes.Buffer
	err        error
}

func (r *recordingWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	r.called = true
	r.lastWriter = writer
	r.lastPath = outputPath
	r.lastFormat = format
	if err := writeFunc(&r.buf); err != nil {
		return err
	}
	return r.err
}

func TestValidateScan(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		name    string
		opts    domain.ScanOptions
		writer  io.Writer
		path    string
		wantErr string
	}{
		{name: "valid with writer", opts: domain.ScanOptions{Paths: []string{"."}}, writer: &buf},
		{name: "valid with path", opts: domain.ScanOptions{Paths: []string{"."}}, path: "out.json"},
		{name: "no paths", opts: domain.ScanOptions{}, writer: &buf, wantErr: "no input paths"},
		{name: "no destination", opts: domain.ScanOptions{Paths: []string{"."}}, wantErr: "output writer or output path"},
		{name: "negative size", opts: domain.ScanOptions{Paths: []string{"."}, MaxFileSize: -1}, writer: &buf, wantErr: "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScan(tt.opts, tt.writer, tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServiceError(t *testing.T) {
	t.Run("domain errors pass through", func(t *testing.T) {
		orig := domain.NewConfigError("bad layer", nil)
		err := serviceError("analysis failed", orig)
		assert.Equal(t, orig, err)
		assert.True(t, domain.HasCode(err, domain.ErrCodeConfigError))
	})

	t.Run("plain errors are wrapped", func(t *testing.T) {
		orig := errors.New("disk on fire")
		err := serviceError("analysis failed", orig)
		assert.True(t, domain.HasCode(err, domain.ErrCodeAnalysisError))
		assert.ErrorIs(t, err, orig)
	})
}

func TestWriteReport(t *testing.T) {
	var out bytes.Buffer

	t.Run("writer used without output path", func(t *testing.T) {
		rw := &recordingWriter{}
		err := writeReport(rw, &out, "", domain.OutputFormatText, func(w io.Writer) error {
			_, err := io.WriteString(w, "report")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, &out, rw.lastWriter)
		assert.Equal(t, "report", rw.buf.String())
	})

	t.Run("writer dropped when path is set", func(t *testing.T) {
		rw := &recordingWriter{}
		err := writeReport(rw, &out, "report.json", domain.OutputFormatJSON, func(io.Writer) error { return nil })
		require.NoError(t, err)
		assert.Nil(t, rw.lastWriter)
		assert.Equal(t, "report.json", rw.lastPath)
	})

	t.Run("write failure keeps output code", func(t *testing.T) {
		rw := &recordingWriter{err: domain.NewOutputError("disk full", nil)}
		err := writeReport(rw, &out, "", domain.OutputFormatText, func(io.Writer) error { return nil })
		assert.True(t, domain.HasCode(err, domain.ErrCodeOutputError))
	})
}
