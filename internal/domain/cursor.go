package domain

import (
	"fmt"
	"strconv"
)

// Cursor is the exclusive upper-bound message identifier for the next
// search. The zero value means "newest first, no bound". Unlike offset
// paging, a snowflake cursor has no reachable-depth ceiling.
type Cursor string

func (c Cursor) IsZero() bool { return c == "" }

func (c Cursor) String() string { return string(c) }

// CursorBefore returns the cursor that excludes id and everything newer
// than it: (id - 1) as a decimal snowflake.
func CursorBefore(id uint64) Cursor {
	if id == 0 {
		return ""
	}
	return Cursor(strconv.FormatUint(id-1, 10))
}

// BatchCursor computes the next cursor from a batch: (minimum identifier
// observed − 1). It operates on the identifiers the service returned, not
// on mutation success, so ghosts and skips still advance the walk.
func BatchCursor(ids []string) (Cursor, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("batch cursor: empty batch")
	}

	var minID uint64
	for i, raw := range ids {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return "", fmt.Errorf("batch cursor: parse id %q: %w", raw, err)
		}
		if i == 0 || id < minID {
			minID = id
		}
	}

	return CursorBefore(minID), nil
}
