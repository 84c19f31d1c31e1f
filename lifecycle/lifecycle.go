// Package lifecycle provides the best-effort teardown guarantee used by
// every demo: once a remote resource has been created, its release call is
// attempted exactly once on every exit path, and a failing release is
// logged rather than propagated so it cannot mask the original error.
package lifecycle

import (
	"context"
	"sync"

	"github.com/hupe1980/agentcore/logging"
)

// Releaser wraps a resource release function so deferred and explicit
// teardown paths can both call it without double-releasing.
type Releaser struct {
	label   string
	log     logging.Logger
	release func(ctx context.Context) error
	once    sync.Once
}

// NewReleaser binds a release function to a resource label for logging.
// A nil logger defaults to NoOpLogger.
func NewReleaser(log logging.Logger, label string, release func(ctx context.Context) error) *Releaser {
	if log == nil {
		log = logging.NoOpLogger{}
	}
	return &Releaser{label: label, log: log, release: release}
}

// Release attempts the teardown. Subsequent calls are no-ops. Errors are
// logged and swallowed; teardown is best effort.
func (r *Releaser) Release(ctx context.Context) {
	r.once.Do(func() {
		if err := r.release(ctx); err != nil {
			r.log.Error("resource cleanup failed", "resource", r.label, "error", err)
			return
		}
		r.log.Debug("resource released", "resource", r.label)
	})
}
