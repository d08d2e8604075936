package domain

// Outcome is the result of processing one message.
type Outcome string

const (
	OutcomeDeleted            Outcome = "deleted"
	OutcomeOverwritten        Outcome = "overwritten"
	OutcomeOverwrittenDeleted Outcome = "overwritten_and_deleted"
	OutcomeSkippedPinned      Outcome = "skipped_pinned"
	OutcomeSkippedOverwritten Outcome = "skipped_overwritten"
	OutcomeGhost              Outcome = "ghost"
	OutcomeFailed             Outcome = "failed"
)

// Processed reports whether the outcome represents completed work against
// the remote service.
func (o Outcome) Processed() bool {
	switch o {
	case OutcomeDeleted, OutcomeOverwritten, OutcomeOverwrittenDeleted:
		return true
	}
	return false
}

// Skipped reports whether the message was left alone: pinned, already
// overwritten, or gone before a mutation could land.
func (o Outcome) Skipped() bool {
	switch o {
	case OutcomeSkippedPinned, OutcomeSkippedOverwritten, OutcomeGhost:
		return true
	}
	return false
}

// SkipsDelay reports whether the post-mutate delay can be skipped. Ghosts
// and skips issued no real work, so there is nothing to throttle.
func (o Outcome) SkipsDelay() bool { return o.Skipped() }
