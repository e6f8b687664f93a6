package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"rollcall/internal/config"
	"rollcall/pkg/contracts/domain"
)

// Exporter fans a report set out to the requested output formats. Each
// format is written independently, so one failing format does not
// block the others.
type Exporter struct {
	paths    *config.Paths
	logger   *slog.Logger
	excel    *ExcelWriter
	markdown *MarkdownWriter
	notebook *NotebookWriter
}

// New creates a new exporter writing into the reports directory.
func New(paths *config.Paths, logger *slog.Logger) *Exporter {
	return &Exporter{
		paths:    paths,
		logger:   logger.With(slog.String("component", "exporter")),
		excel:    NewExcelWriter(),
		markdown: NewMarkdownWriter(),
		notebook: NewNotebookWriter(),
	}
}

// Export writes the set in every requested format and returns the
// artifacts produced. When some formats fail, the successful artifacts
// are still returned together with a joined error carrying one
// FormatError per failure.
func (e *Exporter) Export(ctx context.Context, set domain.ReportSet, formats []domain.Format) ([]domain.Artifact, error) {
	if err := os.MkdirAll(e.paths.ReportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	results := make([]domain.Artifact, len(formats))
	failures := make([]error, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = &FormatError{Format: string(format), Err: err}
				return nil
			}

			artifact, err := e.exportOne(set, format)
			if err != nil {
				e.logger.Error("export failed",
					slog.String("format", string(format)),
					slog.String("error", err.Error()))
				failures[i] = &FormatError{Format: string(format), Err: err}
				return nil
			}

			e.logger.Info("report exported",
				slog.String("format", string(format)),
				slog.String("path", artifact.Path),
				slog.Int64("size", artifact.Size))
			results[i] = artifact
			return nil
		})
	}
	g.Wait()

	var artifacts []domain.Artifact
	for i := range formats {
		if failures[i] == nil {
			artifacts = append(artifacts, results[i])
		}
	}

	return artifacts, errors.Join(failures...)
}

// exportOne writes the set in a single format.
func (e *Exporter) exportOne(set domain.ReportSet, format domain.Format) (domain.Artifact, error) {
	name := ArtifactName(set, format)
	path := e.paths.ReportPath(name)

	var err error
	switch format {
	case domain.FormatExcel:
		err = e.excel.Write(set, path)
	case domain.FormatMarkdown:
		err = e.markdown.Write(set, path)
	case domain.FormatNotebook:
		err = e.notebook.Write(set, path)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return domain.Artifact{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("failed to stat artifact: %w", err)
	}

	return domain.Artifact{
		Format:   format,
		Name:     name,
		Path:     path,
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, nil
}

// ArtifactName returns the file name for one exported format, e.g.
// attendance_officers_2024-03-14.xlsx.
func ArtifactName(set domain.ReportSet, format domain.Format) string {
	return fmt.Sprintf("attendance_%s_%s%s",
		set.Scope, set.GeneratedAt.Format("2006-01-02"), format.Ext())
}
