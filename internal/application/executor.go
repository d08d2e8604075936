package application

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

// reactionEmoji is stamped on a message before it is overwritten.
const reactionEmoji = "🐱"

// Executor performs the configured action for one message at a time and
// classifies the result. Remote calls run under a detached context so an
// interrupt never leaves a mutation's outcome unobserved; only backoff
// sleeps honor cancellation.
type Executor struct {
	client   ports.MessageClient
	governor *Governor
	settings domain.Settings
}

func NewExecutor(client ports.MessageClient, governor *Governor, settings domain.Settings) *Executor {
	return &Executor{client: client, governor: governor, settings: settings}
}

// Process handles a single message and returns its outcome. A non-nil
// error is fatal to the run (auth failure) or a cancellation; everything
// else is folded into the outcome so one stuck message never blocks the
// rest.
func (e *Executor) Process(ctx context.Context, msg domain.Message) (domain.Outcome, error) {
	if e.settings.SkipPinned && msg.Pinned {
		return domain.OutcomeSkippedPinned, nil
	}
	if e.settings.SkipMeowed && msg.IsOverwritten() {
		return domain.OutcomeSkippedOverwritten, nil
	}

	if e.settings.DryRun {
		return e.plannedOutcome(), nil
	}

	callCtx := context.WithoutCancel(ctx)

	switch e.settings.MeowMode {
	case domain.MeowModeEditOnly:
		return e.overwrite(ctx, callCtx, msg, false)
	case domain.MeowModeEditAndDelete:
		return e.overwrite(ctx, callCtx, msg, true)
	default:
		return e.deleteOnly(ctx, callCtx, msg)
	}
}

func (e *Executor) deleteOnly(ctx, callCtx context.Context, msg domain.Message) (domain.Outcome, error) {
	err := e.mutate(ctx, func() error {
		return e.client.Delete(callCtx, msg.ChannelID, msg.ID)
	})

	switch {
	case err == nil:
		return domain.OutcomeDeleted, nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.OutcomeGhost, nil
	default:
		return e.failure(msg, "delete", err)
	}
}

// overwrite reacts (best-effort), edits the content to the marker, and
// optionally deletes. A 404 on the edit means the message vanished before
// the overwrite could land.
func (e *Executor) overwrite(ctx, callCtx context.Context, msg domain.Message, alsoDelete bool) (domain.Outcome, error) {
	if err := e.client.React(callCtx, msg.ChannelID, msg.ID, reactionEmoji); err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return domain.OutcomeFailed, err
		}
		log.WithField("message", msg.ID).WithError(err).Debug("reaction failed, continuing")
	}

	err := e.mutate(ctx, func() error {
		return e.client.Edit(callCtx, msg.ChannelID, msg.ID, domain.OverwriteMarker)
	})

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		return domain.OutcomeGhost, nil
	default:
		return e.failure(msg, "edit", err)
	}

	if !alsoDelete {
		return domain.OutcomeOverwritten, nil
	}

	// Overwrite and delete are two mutations; the usual inter-call
	// delay applies between them.
	if err := e.governor.AfterMutate(ctx); err != nil {
		return domain.OutcomeOverwritten, err
	}

	err = e.mutate(ctx, func() error {
		return e.client.Delete(callCtx, msg.ChannelID, msg.ID)
	})

	switch {
	case err == nil, errors.Is(err, domain.ErrNotFound):
		// A 404 here means someone beat us to the delete after the
		// edit landed; the net effect is the same.
		return domain.OutcomeOverwrittenDeleted, nil
	default:
		return e.failure(msg, "delete after overwrite", err)
	}
}

func (e *Executor) failure(msg domain.Message, op string, err error) (domain.Outcome, error) {
	if errors.Is(err, domain.ErrAuthFailed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.OutcomeFailed, err
	}

	log.WithFields(log.Fields{
		"message": msg.ID,
		"channel": msg.ChannelID,
		"op":      op,
	}).WithError(err).Error("message failed permanently, continuing run")
	return domain.OutcomeFailed, nil
}

// plannedOutcome is what a live run would report for an eligible message,
// used to keep dry-run counts honest.
func (e *Executor) plannedOutcome() domain.Outcome {
	switch e.settings.MeowMode {
	case domain.MeowModeEditOnly:
		return domain.OutcomeOverwritten
	case domain.MeowModeEditAndDelete:
		return domain.OutcomeOverwrittenDeleted
	default:
		return domain.OutcomeDeleted
	}
}

type retryPhase int

const (
	phaseAttempting retryPhase = iota
	phaseBackingOff
	phaseExhausted
)

// mutate drives one mutation through the attempt/backoff/exhausted state
// machine, bounded by max_retries retries beyond the first attempt.
func (e *Executor) mutate(ctx context.Context, call func() error) error {
	var (
		phase   = phaseAttempting
		attempt int
		lastErr error
		backoff func(context.Context) error
	)

	for {
		switch phase {
		case phaseAttempting:
			err := call()

			var rateLimited *domain.RateLimitedError
			var transient *domain.TransientError

			switch {
			case err == nil:
				return nil
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAuthFailed):
				return err
			case errors.As(err, &rateLimited):
				lastErr = err
				wait := rateLimited.RetryAfter
				backoff = func(ctx context.Context) error {
					return e.governor.RateLimitBackoff(ctx, wait)
				}
				phase = phaseBackingOff
			case errors.As(err, &transient):
				lastErr = err
				n := attempt
				backoff = func(ctx context.Context) error {
					return e.governor.TransientBackoff(ctx, n)
				}
				phase = phaseBackingOff
			default:
				return err
			}

		case phaseBackingOff:
			if attempt >= e.settings.MaxRetries {
				phase = phaseExhausted
				continue
			}
			if err := backoff(ctx); err != nil {
				return err
			}
			attempt++
			phase = phaseAttempting

		case phaseExhausted:
			return fmt.Errorf("retries exhausted after %d attempts: %w", attempt+1, lastErr)
		}
	}
}
