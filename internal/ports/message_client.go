package ports

import (
	"context"

	"github.com/daiimus/paracord/internal/domain"
)

// SearchResult is one page of search hits for a target, newest first.
type SearchResult struct {
	// Messages are the authenticated user's own hits on this page.
	Messages []domain.Message
	// HitIDs are the identifiers of every hit the page returned,
	// eligible or not. Cursor advancement uses these, so a page of
	// nothing-but-pinned messages still moves the walk.
	HitIDs []string
	// TotalResults is the service's estimate of matches remaining.
	TotalResults int
}

// MessageClient is the authenticated remote surface the engine drives.
// Implementations classify failures into the domain error taxonomy
// instead of leaking transport errors.
type MessageClient interface {
	Me(ctx context.Context) (domain.Identity, error)
	Search(ctx context.Context, target domain.Target, authorID string, before domain.Cursor) (SearchResult, error)
	Delete(ctx context.Context, channelID, messageID string) error
	Edit(ctx context.Context, channelID, messageID, content string) error
	React(ctx context.Context, channelID, messageID, emoji string) error
}
