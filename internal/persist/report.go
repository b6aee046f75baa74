package persist

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// LoadReport collects the backend read failures of the containers sharing one
// scope. A nil report ignores failures.
type LoadReport struct {
	mu   sync.Mutex
	errs error
}

func (r *LoadReport) add(name string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = multierr.Append(r.errs, fmt.Errorf("load %s: %w", name, err))
}

// Err returns every recorded failure combined, or nil.
func (r *LoadReport) Err() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errs
}
