/*
Package acquire obtains the day's ranked brand list through a tiered
strategy: a hosted rendering API first, then proxied browser automation. A
tier failure is logged and falls through; exhausting both tiers yields an
explicit empty list, never an error.
*/
package acquire

import (
	"context"
	"log/slog"

	"brandrank/internal/brand"
	"brandrank/internal/diag"
	"brandrank/internal/mine"
)

// DefaultMergeThreshold is the browser-tier payload yield below which the
// final DOM is mined as a supplement.
const DefaultMergeThreshold = 50

// Renderer is the hosted rendering collaborator: fully rendered markup for a
// URL, or an error.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// PageCapture is everything the browser tier observed while loading a page.
// A capture may be partial after a failed load; whatever was captured is
// still worth keeping as a diagnostic artifact.
type PageCapture struct {
	HTML       string
	Screenshot []byte
	Payloads   [][]byte
}

// PageLoader is the browser-automation collaborator.
type PageLoader interface {
	LoadAndObserve(ctx context.Context, url string) (*PageCapture, error)
}

// Controller runs the tiered acquisition. A nil Renderer or PageLoader means
// that tier is unconfigured and is skipped.
type Controller struct {
	renderer       Renderer
	loader         PageLoader
	diags          *diag.Store
	target         string
	mergeThreshold int
	log            *slog.Logger
}

func NewController(renderer Renderer, loader PageLoader, diags *diag.Store, target string, mergeThreshold int, log *slog.Logger) *Controller {
	if mergeThreshold <= 0 {
		mergeThreshold = DefaultMergeThreshold
	}
	return &Controller{
		renderer:       renderer,
		loader:         loader,
		diags:          diags,
		target:         target,
		mergeThreshold: mergeThreshold,
		log:            log,
	}
}

// Acquire returns the day's ranked list. An empty result is the explicit
// total-failure signal for the caller to handle.
func (c *Controller) Acquire(ctx context.Context) []string {
	if names := c.renderTier(ctx); len(names) > 0 {
		return names
	}
	return c.browserTier(ctx)
}

func (c *Controller) renderTier(ctx context.Context) []string {
	if c.renderer == nil {
		c.log.Warn("acquire: rendering API not configured, skipping tier")
		return nil
	}
	markup, err := c.renderer.Render(ctx, c.target)
	if err != nil {
		c.log.Warn("acquire: rendering tier failed", "error", err)
		return nil
	}
	c.diags.SaveMarkup(diag.RenderMarkupFile, markup)
	names := mine.HTML(markup)
	c.log.Info("acquire: rendering tier mined", "count", len(names))
	return names
}

func (c *Controller) browserTier(ctx context.Context) []string {
	if c.loader == nil {
		c.log.Warn("acquire: browser tier not configured, giving up")
		return nil
	}
	capture, err := c.loader.LoadAndObserve(ctx, c.target)
	if capture != nil {
		c.diags.SaveMarkup(diag.BrowserMarkupFile, capture.HTML)
		c.diags.SaveBytes(diag.ScreenshotFile, capture.Screenshot)
	}
	if err != nil {
		c.log.Warn("acquire: browser tier failed", "error", err)
		return nil
	}

	names := mine.JSON(capture.Payloads)
	c.log.Info("acquire: browser tier mined payloads",
		"payloads", len(capture.Payloads), "count", len(names))

	// A thin payload yield usually means part of the list only ever
	// rendered into the DOM, so the final markup supplements it.
	if len(names) < c.mergeThreshold {
		names = brand.Merge(names, mine.HTML(capture.HTML), brand.MaxRank)
	}
	return names
}
