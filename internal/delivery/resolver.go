package delivery

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// ErrSuperseded is returned by a lookup that a newer lookup replaced.
var ErrSuperseded = errors.New("lookup superseded by a newer request")

// Lookup outcomes reported to metrics.
const (
	outcomeHit        = "hit"
	outcomeFallback   = "fallback"
	outcomeInvalid    = "invalid"
	outcomeSuperseded = "superseded"
	outcomeCanceled   = "canceled"
)

// Resolver serializes pincode lookups for one visitor: starting a lookup
// cancels the one still in flight.
type Resolver struct {
	delay   time.Duration
	metrics *metrics.StoreMetrics

	mu       sync.Mutex
	seq      uint64
	inflight context.CancelCauseFunc
}

// NewResolver builds a resolver that waits delay before answering.
func NewResolver(delay time.Duration, m *metrics.StoreMetrics) *Resolver {
	if delay < 0 {
		delay = 0
	}
	return &Resolver{delay: delay, metrics: m}
}

// Lookup validates pin, waits the configured delay and answers from the
// table. It returns ErrSuperseded (coded CodeCanceled) when a newer lookup
// starts first, and ctx's error when the caller gives up.
func (r *Resolver) Lookup(ctx context.Context, pin string) (Estimate, error) {
	if !ValidPincode(pin) {
		r.metrics.IncLookup(outcomeInvalid)
		return Resolve(pin)
	}

	lookupCtx, cancel := context.WithCancelCause(ctx)
	r.mu.Lock()
	if r.inflight != nil {
		r.inflight(ErrSuperseded)
	}
	r.seq++
	mine := r.seq
	r.inflight = cancel
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.seq == mine {
			r.inflight = nil
		}
		r.mu.Unlock()
		cancel(nil)
	}()

	timer := time.NewTimer(r.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-lookupCtx.Done():
		if errors.Is(context.Cause(lookupCtx), ErrSuperseded) {
			r.metrics.IncLookup(outcomeSuperseded)
			return Estimate{}, pkgerrors.Wrap(pkgerrors.CodeCanceled, ErrSuperseded, "pincode lookup superseded")
		}
		r.metrics.IncLookup(outcomeCanceled)
		return Estimate{}, ctx.Err()
	}

	est, err := Resolve(pin)
	if err != nil {
		return Estimate{}, err
	}
	if est.Known {
		r.metrics.IncLookup(outcomeHit)
	} else {
		r.metrics.IncLookup(outcomeFallback)
	}
	return est, nil
}

// Cancel aborts the lookup in flight, if any, which then reports ErrSuperseded.
func (r *Resolver) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight != nil {
		r.inflight(ErrSuperseded)
		r.inflight = nil
	}
}
