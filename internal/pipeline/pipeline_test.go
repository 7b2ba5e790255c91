package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandrank/internal/matrix"
	"brandrank/internal/notify"
)

var kst = time.FixedZone("KST", 9*60*60)

type fakeAcquirer struct {
	names []string
}

func (f *fakeAcquirer) Acquire(ctx context.Context) []string { return f.names }

type fakeStore struct {
	yesterday map[string]int
	err       error
	gotList   []string
	gotDay    time.Time
	calls     int
}

func (f *fakeStore) Commit(list []string, today time.Time) (map[string]int, error) {
	f.calls++
	f.gotList = list
	f.gotDay = today
	return f.yesterday, f.err
}

type fakeNotifier struct {
	reports      []notify.Report
	failures     []string
	failureTimes []time.Time
	top10Err     error
	failureErr   error
}

func (f *fakeNotifier) Top10(ctx context.Context, report notify.Report) error {
	f.reports = append(f.reports, report)
	return f.top10Err
}

func (f *fakeNotifier) Failure(ctx context.Context, when time.Time, detail string) error {
	f.failures = append(f.failures, detail)
	f.failureTimes = append(f.failureTimes, when)
	return f.failureErr
}

type fakeUploader struct {
	paths []string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

func baseDeps(acq *fakeAcquirer, store *fakeStore, notifier *fakeNotifier, uploader *fakeUploader) Deps {
	// Avoid wrapping a typed-nil pointer in the Uploader interface so the
	// pipeline's nil guard sees "no uploader" as intended.
	var up Uploader
	if uploader != nil {
		up = uploader
	}
	return Deps{
		Acquirer:     acq,
		Store:        store,
		Notifiers:    []notify.Notifier{notifier},
		Uploader:     up,
		WorkbookPath: "data/ranking.xlsx",
		Location:     kst,
		Log:          slog.New(slog.DiscardHandler),
		Now: func() time.Time {
			return time.Date(2026, 8, 24, 7, 30, 0, 0, time.UTC)
		},
	}
}

func TestRunHappyPath(t *testing.T) {
	acq := &fakeAcquirer{names: []string{"라네즈", "설화수", "이니스프리"}}
	store := &fakeStore{yesterday: map[string]int{"설화수": 1, "라네즈": 2}}
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}

	err := Run(context.Background(), baseDeps(acq, store, notifier, uploader))
	require.NoError(t, err)

	require.Equal(t, 1, store.calls)
	assert.Equal(t, []string{"라네즈", "설화수", "이니스프리"}, store.gotList)
	assert.Equal(t, "2026-08-24", store.gotDay.Format("2006-01-02"))
	assert.Equal(t, "KST", store.gotDay.Format("MST"), "run day is resolved in the configured zone")

	require.Len(t, notifier.reports, 1)
	entries := notifier.reports[0].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, matrix.Delta{Kind: matrix.Up, Steps: 1}, entries[0].Delta)
	assert.Equal(t, matrix.Delta{Kind: matrix.Down, Steps: 1}, entries[1].Delta)
	assert.Equal(t, matrix.Delta{Kind: matrix.New}, entries[2].Delta)

	assert.Equal(t, []string{"data/ranking.xlsx"}, uploader.paths)
	assert.Empty(t, notifier.failures)
}

func TestRunEmptyAcquisitionNotifiesFailure(t *testing.T) {
	acq := &fakeAcquirer{}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}

	err := Run(context.Background(), baseDeps(acq, store, notifier, uploader))
	require.NoError(t, err, "empty acquisition is a recoverable outcome")

	assert.Equal(t, 0, store.calls, "nothing must be persisted")
	assert.Empty(t, uploader.paths)
	require.Len(t, notifier.failures, 1)
	assert.Contains(t, notifier.failures[0], "2026-08-24")
	assert.Equal(t, "2026-08-24", notifier.failureTimes[0].Format("2006-01-02"))
}

func TestRunPersistenceFailureAborts(t *testing.T) {
	acq := &fakeAcquirer{names: []string{"설화수"}}
	store := &fakeStore{err: errors.New("disk full")}
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}

	err := Run(context.Background(), baseDeps(acq, store, notifier, uploader))
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")

	assert.Empty(t, notifier.reports, "no success notification after a failed commit")
	assert.Empty(t, notifier.failures)
	assert.Empty(t, uploader.paths)
}

func TestRunSinkFailuresAreSwallowed(t *testing.T) {
	acq := &fakeAcquirer{names: []string{"설화수"}}
	store := &fakeStore{}
	notifier := &fakeNotifier{top10Err: errors.New("slack 403")}
	uploader := &fakeUploader{err: errors.New("drive quota")}

	err := Run(context.Background(), baseDeps(acq, store, notifier, uploader))
	assert.NoError(t, err)
	assert.Len(t, notifier.reports, 1)
	assert.Len(t, uploader.paths, 1)
}

func TestRunCommentatorErrorIsSkipped(t *testing.T) {
	acq := &fakeAcquirer{names: []string{"설화수"}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}

	deps := baseDeps(acq, store, notifier, &fakeUploader{})
	deps.Commentator = func(ctx context.Context, entries []notify.Entry) ([]string, error) {
		return nil, errors.New("quota exceeded")
	}

	err := Run(context.Background(), deps)
	require.NoError(t, err)
	require.Len(t, notifier.reports, 1)
	assert.Empty(t, notifier.reports[0].Commentary)
}

func TestRunCommentaryIncluded(t *testing.T) {
	acq := &fakeAcquirer{names: []string{"설화수"}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}

	deps := baseDeps(acq, store, notifier, nil)
	deps.Commentator = func(ctx context.Context, entries []notify.Entry) ([]string, error) {
		return []string{"설화수 신규 진입"}, nil
	}

	err := Run(context.Background(), deps)
	require.NoError(t, err)
	require.Len(t, notifier.reports, 1)
	assert.Equal(t, []string{"설화수 신규 진입"}, notifier.reports[0].Commentary)
}
