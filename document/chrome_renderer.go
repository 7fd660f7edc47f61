package document

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"usedcars-report/models"
	"usedcars-report/utils"
)

const footerTemplate = `<div style="font-size:8px;font-family:Helvetica,Arial,sans-serif;width:100%;text-align:right;padding-right:10mm;">Page <span class="pageNumber"></span></div>`

// ChromeRenderer prints the HTML form of the report to PDF with headless Chrome.
type ChromeRenderer struct {
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
}

func NewChromeRenderer(chromeBin string, logger *utils.Logger) *ChromeRenderer {
	return &ChromeRenderer{chromeBin: chromeBin, timeout: 2 * time.Minute, logger: logger}
}

func (r *ChromeRenderer) Render(ctx context.Context, doc *models.ReportDocument, path string) error {
	chromeBin := FindChromeBinary(r.chromeBin)
	r.logger.Info("[chrome] Using browser binary: %s", chromeBin)

	htmlFile, err := os.CreateTemp("", "used-cars-report-*.html")
	if err != nil {
		return fmt.Errorf("document: create html: %w", err)
	}
	defer os.Remove(htmlFile.Name())
	if err := WriteHTML(htmlFile, doc); err != nil {
		_ = htmlFile.Close()
		return fmt.Errorf("document: render html: %w", err)
	}
	if err := htmlFile.Close(); err != nil {
		return fmt.Errorf("document: close html: %w", err)
	}
	pageURL, err := fileURL(htmlFile.Name())
	if err != nil {
		return fmt.Errorf("document: html url: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(string(pageURL)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(1).
				WithMarginBottom(1).
				WithMarginLeft(1).
				WithMarginRight(1).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate("<span></span>").
				WithFooterTemplate(footerTemplate).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("document: print to pdf: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("document: create output dir: %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("document: write %q: %w", path, err)
	}
	r.logger.Info("[chrome] Wrote %d bytes to %s", len(buf), path)
	return nil
}

// FindChromeBinary returns configured if set, else the first Chrome or
// Chromium found on PATH or in common install locations. Empty means let
// chromedp search.
func FindChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
