package document

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"usedcars-report/config"
	"usedcars-report/models"
	"usedcars-report/utils"
)

// Renderer serializes an assembled report to a file.
type Renderer interface {
	Render(ctx context.Context, doc *models.ReportDocument, path string) error
}

// NewRenderer picks the renderer named by cfg.Renderer.
func NewRenderer(cfg *config.Config, logger *utils.Logger) (Renderer, error) {
	switch cfg.Renderer {
	case config.RendererPDF, "":
		return NewPDFRenderer(logger), nil
	case config.RendererChrome:
		return NewChromeRenderer(cfg.ChromeBin, logger), nil
	}
	return nil, fmt.Errorf("document: unknown renderer %q", cfg.Renderer)
}

// Inspect validates the PDF at path and returns its page count.
func Inspect(path string) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return 0, fmt.Errorf("document: validate %q: %w", path, err)
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("document: page count %q: %w", path, err)
	}
	return n, nil
}
