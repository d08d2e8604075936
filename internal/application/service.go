package application

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

// ErrInterrupted is returned when the run is cancelled. The in-flight
// message was finished (or never started) and the checkpoint was saved,
// so resuming is safe.
var ErrInterrupted = errors.New("run interrupted, checkpoint saved")

// Summary aggregates one run's outcomes across all targets.
type Summary struct {
	Deleted     int
	Overwritten int
	Ghosts      int
	Skipped     int
	Failed      int
	RateLimited int
	TargetsDone int
}

func (s *Summary) observe(outcome domain.Outcome) {
	switch outcome {
	case domain.OutcomeDeleted:
		s.Deleted++
	case domain.OutcomeOverwritten:
		s.Overwritten++
	case domain.OutcomeOverwrittenDeleted:
		s.Overwritten++
		s.Deleted++
	case domain.OutcomeGhost:
		s.Ghosts++
	case domain.OutcomeSkippedPinned, domain.OutcomeSkippedOverwritten:
		s.Skipped++
	case domain.OutcomeFailed:
		s.Failed++
	}
}

// Service is the run controller: it walks the enabled targets in
// configuration order, drives the walker/executor loop for each, and
// checkpoints after every message. A single sequential worker, on
// purpose: concurrency would defeat the tuned inter-call delays.
type Service struct {
	client   ports.MessageClient
	store    ports.CheckpointStore
	clock    ports.Clock
	settings domain.Settings

	governor *Governor
	walker   *Walker
	executor *Executor
}

func NewService(client ports.MessageClient, store ports.CheckpointStore, settings domain.Settings, clock ports.Clock, sleeper ports.Sleeper) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	governor := NewGovernor(settings, sleeper)

	return &Service{
		client:   client,
		store:    store,
		clock:    clock,
		settings: settings,
		governor: governor,
		walker:   NewWalker(client, governor, settings.MaxRetries),
		executor: NewExecutor(client, governor, settings),
	}
}

// Run processes every enabled target until exhausted, resuming from the
// checkpoint. Cancellation is honored at message boundaries only.
func (s *Service) Run(ctx context.Context, identity domain.Identity, targets []domain.Target) (Summary, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load checkpoint: %w", err)
	}

	var summary Summary
	for _, target := range targets {
		if !target.Enabled {
			continue
		}

		record, ok := records[target.ID()]
		if !ok {
			record = domain.NewProgressRecord(target.ID())
		}
		if record.Completed {
			log.WithField("target", target.DisplayName()).Info("target already complete, skipping")
			summary.TargetsDone++
			continue
		}

		log.WithFields(log.Fields{
			"target": target.DisplayName(),
			"resume": StateOf(record) == WalkInProgress,
		}).Info("processing target")

		err := s.runTarget(ctx, identity, target, &record, &summary)
		summary.RateLimited = s.governor.RateLimitCount()

		switch {
		case err == nil:
			summary.TargetsDone++
		case errors.Is(err, ErrInterrupted):
			return summary, err
		case errors.Is(err, domain.ErrAuthFailed):
			log.WithField("target", target.DisplayName()).Error("authentication failed, aborting run")
			return summary, err
		default:
			log.WithField("target", target.DisplayName()).WithError(err).Error("target failed, moving to next")
		}
	}

	summary.RateLimited = s.governor.RateLimitCount()
	return summary, nil
}

func (s *Service) runTarget(ctx context.Context, identity domain.Identity, target domain.Target, record *domain.ProgressRecord, summary *Summary) error {
	// Saves must land even when the run context is already cancelled.
	saveCtx := context.WithoutCancel(ctx)

	for {
		if ctx.Err() != nil {
			return s.interrupt(saveCtx, *record)
		}

		result, err := s.walker.NextBatch(ctx, target, identity.ID, record.Cursor)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.interrupt(saveCtx, *record)
			}
			return err
		}

		if len(result.HitIDs) == 0 {
			record.Seal(s.clock.Now())
			if err := s.persist(saveCtx, *record); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"target":    target.DisplayName(),
				"processed": record.Processed,
				"skipped":   record.Skipped,
				"failed":    record.Failed,
			}).Info("target exhausted")
			return nil
		}

		log.WithFields(log.Fields{
			"target":    target.DisplayName(),
			"batch":     len(result.Messages),
			"remaining": result.TotalResults,
		}).Debug("processing batch")

		for _, msg := range result.Messages {
			if ctx.Err() != nil {
				return s.interrupt(saveCtx, *record)
			}

			outcome, err := s.executor.Process(ctx, msg)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return s.interrupt(saveCtx, *record)
				}
				return err
			}

			record.Apply(outcome, s.clock.Now())
			summary.observe(outcome)

			if err := s.persist(saveCtx, *record); err != nil {
				return err
			}

			if !outcome.SkipsDelay() && !s.settings.DryRun {
				if err := s.governor.AfterMutate(ctx); err != nil {
					return s.interrupt(saveCtx, *record)
				}
			}
		}

		// The cursor advances only after the batch has been attempted,
		// bounding duplicate work on resume to one partial batch. It is
		// computed from every returned identifier, so filtered and
		// ghost messages still move the boundary.
		cursor, err := domain.BatchCursor(result.HitIDs)
		if err != nil {
			return err
		}
		record.Advance(cursor, s.clock.Now())
		if err := s.persist(saveCtx, *record); err != nil {
			return err
		}

		if err := s.governor.AfterSearch(ctx); err != nil {
			return s.interrupt(saveCtx, *record)
		}
	}
}

// persist saves the record unless this is a dry run, which must leave the
// checkpoint untouched so a later live run starts fresh.
func (s *Service) persist(ctx context.Context, record domain.ProgressRecord) error {
	if s.settings.DryRun {
		return nil
	}
	if err := s.store.Save(ctx, record); err != nil {
		return fmt.Errorf("save checkpoint for %s: %w", record.TargetID, err)
	}
	return nil
}

func (s *Service) interrupt(saveCtx context.Context, record domain.ProgressRecord) error {
	if err := s.persist(saveCtx, record); err != nil {
		return err
	}
	log.WithField("target", record.TargetID).Warn("interrupted, checkpoint saved")
	return ErrInterrupted
}
