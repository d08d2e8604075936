package application

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

// WalkState is where a target stands in its cursor walk.
type WalkState int

const (
	WalkNotStarted WalkState = iota
	WalkInProgress
	WalkExhausted
)

// StateOf derives the walk state from a progress record.
func StateOf(record domain.ProgressRecord) WalkState {
	switch {
	case record.Completed:
		return WalkExhausted
	case record.Cursor.IsZero() && record.Processed == 0 && record.Skipped == 0 && record.Failed == 0:
		return WalkNotStarted
	default:
		return WalkInProgress
	}
}

// Walker pulls batches of matching messages older than a moving boundary.
// It recovers from rate limiting and search-index warmup internally, so a
// returned error is either fatal to the run (auth) or fatal to the target
// (transient retries exhausted).
type Walker struct {
	client     ports.MessageClient
	governor   *Governor
	maxRetries int
}

func NewWalker(client ports.MessageClient, governor *Governor, maxRetries int) *Walker {
	return &Walker{client: client, governor: governor, maxRetries: maxRetries}
}

// NextBatch fetches the next page for the target, strictly older than the
// cursor when one is set. An empty result means the target is exhausted.
func (w *Walker) NextBatch(ctx context.Context, target domain.Target, authorID string, cursor domain.Cursor) (ports.SearchResult, error) {
	attempt := 0
	for {
		result, err := w.client.Search(ctx, target, authorID, cursor)
		if err == nil {
			return result, nil
		}

		var rateLimited *domain.RateLimitedError
		var indexing *domain.IndexingError
		var transient *domain.TransientError

		switch {
		case errors.As(err, &rateLimited):
			log.WithFields(log.Fields{
				"target":      target.ID(),
				"retry_after": rateLimited.RetryAfter,
			}).Warn("rate limited on search, backing off")
			if err := w.governor.RateLimitBackoff(ctx, rateLimited.RetryAfter); err != nil {
				return ports.SearchResult{}, err
			}

		case errors.As(err, &indexing):
			log.WithFields(log.Fields{
				"target": target.ID(),
				"wait":   indexing.RetryAfter,
			}).Info("search index warming up, waiting")
			if err := w.governor.IndexingWait(ctx, indexing.RetryAfter); err != nil {
				return ports.SearchResult{}, err
			}

		case errors.As(err, &transient):
			if attempt >= w.maxRetries {
				return ports.SearchResult{}, fmt.Errorf("search %s: retries exhausted: %w", target.ID(), err)
			}
			log.WithFields(log.Fields{
				"target":  target.ID(),
				"attempt": attempt + 1,
			}).WithError(err).Warn("transient search failure, retrying")
			if err := w.governor.TransientBackoff(ctx, attempt); err != nil {
				return ports.SearchResult{}, err
			}
			attempt++

		default:
			return ports.SearchResult{}, err
		}
	}
}
