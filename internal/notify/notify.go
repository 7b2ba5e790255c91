/*
Package notify delivers the daily Top-10 ranking, or an acquisition-failure
report, to the configured sinks (Slack webhook, SMTP email). Delivery is
best-effort: the caller logs a sink failure and moves on.
*/
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brandrank/internal/matrix"
)

// Entry is one line of the Top-10 listing.
type Entry struct {
	Rank  int
	Name  string
	Delta matrix.Delta
}

// Report is the daily notification payload.
type Report struct {
	Date       time.Time
	Entries    []Entry
	Commentary []string
}

// Notifier is a notification sink.
type Notifier interface {
	Top10(ctx context.Context, report Report) error
	Failure(ctx context.Context, when time.Time, detail string) error
}

// BuildEntries pairs today's leading names with yesterday's rank map.
func BuildEntries(names []string, yesterday map[string]int, top int) []Entry {
	if len(names) < top {
		top = len(names)
	}
	entries := make([]Entry, 0, top)
	for i, name := range names[:top] {
		rank := i + 1
		prevRank, present := yesterday[name]
		entries = append(entries, Entry{
			Rank:  rank,
			Name:  name,
			Delta: matrix.Compute(rank, prevRank, present),
		})
	}
	return entries
}

func formatLines(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", e.Rank, e.Delta, e.Name))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatBulletList(points []string) string {
	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("- %s\n", p))
	}
	return strings.TrimRight(sb.String(), "\n")
}
