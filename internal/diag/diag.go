/*
Package diag persists per-run diagnostic artifacts: raw markup, raw API
responses and browser screenshots, written under fixed filenames and
overwritten each run. Captures are best-effort; a failed write is logged and
never fails the run.
*/
package diag

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Fixed artifact filenames, one set per run.
const (
	RenderMarkupFile   = "render_api.html"
	RenderResponseFile = "render_api_response.json"
	BrowserMarkupFile  = "browser_final.html"
	ScreenshotFile     = "browser_screenshot.png"
)

// markupByteCap bounds saved markup so one pathological page cannot fill the
// disk with a single capture.
const markupByteCap = 200_000

// Store writes artifacts into a single directory. A nil Store discards
// everything, which keeps call sites unconditional.
type Store struct {
	dir string
	log *slog.Logger
}

func NewStore(dir string, log *slog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// SaveMarkup writes markup truncated to the byte cap.
func (s *Store) SaveMarkup(name, markup string) {
	if s == nil || markup == "" {
		return
	}
	if len(markup) > markupByteCap {
		markup = markup[:markupByteCap]
	}
	s.SaveBytes(name, []byte(markup))
}

// SaveBytes writes a raw artifact.
func (s *Store) SaveBytes(name string, data []byte) {
	if s == nil || len(data) == 0 {
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Warn("diag: create artifact dir failed", "dir", s.dir, "error", err)
		return
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Warn("diag: write artifact failed", "path", path, "error", err)
	}
}
