package application

import (
	"context"
	"time"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

// transientBackoffBase seeds the exponential backoff used when the
// service gives no wait hint.
const transientBackoffBase = time.Second

// Governor owns every deliberate pause between remote calls: the fixed
// per-call-type delays and the dynamic backoff derived from the service's
// own rate-limit signal. It is the only component that sleeps; everything
// else asks it to. There is exactly one worker, so the counters need no
// locking.
type Governor struct {
	searchDelay time.Duration
	mutateDelay time.Duration
	multiplier  float64
	sleeper     ports.Sleeper

	rateLimited int
}

func NewGovernor(settings domain.Settings, sleeper ports.Sleeper) *Governor {
	if sleeper == nil {
		sleeper = ports.SystemSleeper{}
	}

	multiplier := settings.BackoffMultiplier
	if multiplier < 1 {
		multiplier = domain.DefaultSettings().BackoffMultiplier
	}

	return &Governor{
		searchDelay: settings.SearchDelay,
		mutateDelay: settings.DeleteDelay,
		multiplier:  multiplier,
		sleeper:     sleeper,
	}
}

// AfterSearch applies the fixed inter-search delay.
func (g *Governor) AfterSearch(ctx context.Context) error {
	return g.sleeper.Sleep(ctx, g.searchDelay)
}

// AfterMutate applies the fixed post-mutation delay. Callers skip it for
// ghost and skip outcomes, where no real work occurred.
func (g *Governor) AfterMutate(ctx context.Context) error {
	return g.sleeper.Sleep(ctx, g.mutateDelay)
}

// RateLimitBackoff suspends for the configured multiple of the
// service-provided minimum wait. The margin beyond what the service
// demands is deliberate.
func (g *Governor) RateLimitBackoff(ctx context.Context, retryAfter time.Duration) error {
	g.rateLimited++
	return g.sleeper.Sleep(ctx, time.Duration(float64(retryAfter)*g.multiplier))
}

// TransientBackoff suspends exponentially for attempt n (0-based) when
// the service offered no wait hint.
func (g *Governor) TransientBackoff(ctx context.Context, attempt int) error {
	if attempt > 6 {
		attempt = 6
	}
	return g.sleeper.Sleep(ctx, transientBackoffBase<<attempt)
}

// IndexingWait suspends for exactly the hinted duration while a channel's
// search index warms up. No multiplier: the hint is not a sanction.
func (g *Governor) IndexingWait(ctx context.Context, hint time.Duration) error {
	return g.sleeper.Sleep(ctx, hint)
}

// RateLimitCount reports how many times the service rate-limited the run.
func (g *Governor) RateLimitCount() int { return g.rateLimited }
