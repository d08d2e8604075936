package domain

import "time"

// ProgressRecord is the per-target resumable state. One record per target
// identifier; the set of records is the entire checkpoint. A record marked
// complete is never re-queried unless the operator resets the checkpoint.
type ProgressRecord struct {
	TargetID  string
	Cursor    Cursor
	Processed int
	Skipped   int
	Failed    int
	Completed bool
	UpdatedAt time.Time
}

func NewProgressRecord(targetID string) ProgressRecord {
	return ProgressRecord{TargetID: targetID}
}

// Apply folds one outcome into the record's tallies.
func (r *ProgressRecord) Apply(outcome Outcome, now time.Time) {
	switch {
	case outcome.Processed():
		r.Processed++
	case outcome.Skipped():
		r.Skipped++
	default:
		r.Failed++
	}
	r.UpdatedAt = now
}

// Advance moves the cursor after a batch has been attempted, and stamps
// the record.
func (r *ProgressRecord) Advance(cursor Cursor, now time.Time) {
	r.Cursor = cursor
	r.UpdatedAt = now
}

// Seal marks the target exhausted.
func (r *ProgressRecord) Seal(now time.Time) {
	r.Completed = true
	r.UpdatedAt = now
}
