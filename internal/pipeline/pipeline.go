/*
Package pipeline runs one daily extraction: acquire the ranked list, commit
it to the month matrix, pair the Top-10 with yesterday's ranks, notify and
back up the workbook. An empty acquisition is a recoverable outcome reported
through the sinks; a persistence failure aborts the run.
*/
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"brandrank/internal/notify"
)

const topWindow = 10

// Acquirer produces the day's ranked list; empty means total acquisition
// failure.
type Acquirer interface {
	Acquire(ctx context.Context) []string
}

// Store persists today's list and returns yesterday's name-to-rank map.
type Store interface {
	Commit(list []string, today time.Time) (map[string]int, error)
}

// Uploader backs up the workbook file.
type Uploader interface {
	Upload(ctx context.Context, path string) error
}

// Commentator produces optional highlight bullets for the notification.
type Commentator func(ctx context.Context, entries []notify.Entry) ([]string, error)

type Deps struct {
	Acquirer     Acquirer
	Store        Store
	Notifiers    []notify.Notifier
	Uploader     Uploader
	Commentator  Commentator
	WorkbookPath string
	Location     *time.Location
	Log          *slog.Logger

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Run executes one daily run. The returned error is a persistence failure;
// every other failure mode is handled in place.
func Run(ctx context.Context, deps Deps) error {
	log := deps.Log
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().In(deps.Location)

	names := deps.Acquirer.Acquire(ctx)
	if len(names) == 0 {
		log.Error("run: acquisition produced no names", "date", now.Format("2006-01-02"))
		detail := fmt.Sprintf("모든 수집 단계가 실패했습니다 (%s). 진단 아티팩트를 확인하세요.", now.Format("2006-01-02 15:04 MST"))
		for _, n := range deps.Notifiers {
			if err := n.Failure(ctx, now, detail); err != nil {
				log.Warn("run: failure notification not delivered", "error", err)
			}
		}
		return nil
	}
	log.Info("run: acquired ranked list", "count", len(names), "date", now.Format("2006-01-02"))

	yesterday, err := deps.Store.Commit(names, now)
	if err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	entries := notify.BuildEntries(names, yesterday, topWindow)

	var commentary []string
	if deps.Commentator != nil {
		commentary, err = deps.Commentator(ctx, entries)
		if err != nil {
			log.Warn("run: commentary skipped", "error", err)
			commentary = nil
		}
	}

	report := notify.Report{Date: now, Entries: entries, Commentary: commentary}
	for _, n := range deps.Notifiers {
		if err := n.Top10(ctx, report); err != nil {
			log.Warn("run: notification not delivered", "error", err)
		}
	}

	if deps.Uploader != nil {
		if err := deps.Uploader.Upload(ctx, deps.WorkbookPath); err != nil {
			log.Warn("run: workbook backup failed", "error", err)
		}
	}

	return nil
}
