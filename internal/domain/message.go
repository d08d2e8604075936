package domain

import (
	"strconv"
	"time"
)

// OverwriteMarker is the content written over a message before deletion in
// meow mode. Already-overwritten detection compares against it byte for
// byte; a trailing newline or extra space must not match.
const OverwriteMarker = "Meow\nMeow\nMeow\nMeow"

// Message is one search hit. Identifiers are snowflakes: 64-bit,
// time-ordered, so numeric comparison orders messages by creation time.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
	Pinned    bool
	Timestamp time.Time
}

func (m Message) Snowflake() (uint64, error) {
	return strconv.ParseUint(m.ID, 10, 64)
}

// IsOverwritten reports whether the content already equals the overwrite
// marker exactly.
func (m Message) IsOverwritten() bool {
	return m.Content == OverwriteMarker
}
