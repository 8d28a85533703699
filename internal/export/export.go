// Package export turns roadmap SVG into PNG, JPEG and PDF with headless
// Chrome.
package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Options tune raster and print output.
type Options struct {
	Width       float64 // drawing size in CSS px
	Height      float64
	Scale       float64 // device scale factor for PNG and JPEG
	JPEGQuality int
	ChromePath  string // empty uses the chromedp default lookup
}

// Exporter renders SVG through a fresh headless Chrome per call.
type Exporter struct {
	opts   Options
	logger *slog.Logger
}

// New returns an Exporter. Zero options take the defaults: 1200x620 at
// scale 2 and JPEG quality 90.
func New(opts Options, logger *slog.Logger) *Exporter {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1200, 620
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 90
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{opts: opts, logger: logger}
}

// Export writes svg to w in format f. SVG is copied through unchanged.
func (e *Exporter) Export(ctx context.Context, svg []byte, f Format, w io.Writer) error {
	switch f {
	case SVG:
		if _, err := w.Write(svg); err != nil {
			return fmt.Errorf("writing svg: %w", err)
		}
		return nil
	case PNG:
		buf, err := e.screenshot(ctx, svg)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing png: %w", err)
		}
		return nil
	case JPEG:
		buf, err := e.screenshot(ctx, svg)
		if err != nil {
			return err
		}
		return toJPEG(buf, e.opts.JPEGQuality, w)
	case PDF:
		buf, err := e.print(ctx, svg)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing pdf: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func (e *Exporter) browser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	if e.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.opts.ChromePath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

func dataURI(html string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}

// fontsReady waits until web fonts referenced by the page have loaded.
func fontsReady() chromedp.Action {
	var ok bool
	return chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &ok,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) })
}

func (e *Exporter) screenshot(ctx context.Context, svg []byte) ([]byte, error) {
	ctx, cancel := e.browser(ctx)
	defer cancel()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(e.opts.Width), int64(e.opts.Height), chromedp.EmulateScale(e.opts.Scale)),
		chromedp.Navigate(dataURI(Page(svg, e.opts.Width, e.opts.Height, false))),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		fontsReady(),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	}

	e.logger.Debug("rendering screenshot", "scale", e.opts.Scale, "svg_bytes", len(svg))
	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("taking screenshot: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("taking screenshot: empty image")
	}
	return buf, nil
}

// A4 in inches.
const (
	a4Long  = 11.69
	a4Short = 8.27
)

func (e *Exporter) print(ctx context.Context, svg []byte) ([]byte, error) {
	ctx, cancel := e.browser(ctx)
	defer cancel()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI(Page(svg, e.opts.Width, e.opts.Height, true))),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		fontsReady(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				WithPaperWidth(a4Long).
				WithPaperHeight(a4Short).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	}

	e.logger.Debug("printing pdf", "svg_bytes", len(svg))
	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("printing pdf: %w", err)
	}
	return buf, nil
}

func toJPEG(pngData []byte, quality int, w io.Writer) error {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return fmt.Errorf("decoding png screenshot: %w", err)
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encoding jpeg: %w", err)
	}
	return nil
}
