package driven

import "context"

// HistoryWatcher reports changes made to persisted history by other
// processes.
type HistoryWatcher interface {
	// Watch blocks until ctx is cancelled, calling onChange after each
	// change to the watched history.
	Watch(ctx context.Context, onChange func()) error
}
