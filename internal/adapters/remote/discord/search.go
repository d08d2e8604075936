package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

type searchHit struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	Hit       bool      `json:"hit"`
	Timestamp time.Time `json:"timestamp"`
	Author    struct {
		ID string `json:"id"`
	} `json:"author"`
}

type searchResponse struct {
	TotalResults int           `json:"total_results"`
	Messages     [][]searchHit `json:"messages"`
}

// Search fetches one page of the author's messages in the target, newest
// first, strictly older than the cursor when one is set. Guild targets go
// through the guild-wide search endpoint scoped to the channel; DMs and
// group DMs search the channel directly.
func (c *Client) Search(ctx context.Context, target domain.Target, authorID string, before domain.Cursor) (ports.SearchResult, error) {
	var path string
	query := url.Values{}
	query.Set("author_id", authorID)
	query.Set("include_nsfw", "true")
	query.Set("sort_by", "timestamp")
	query.Set("sort_order", "desc")

	if target.Kind == domain.TargetKindGuild {
		path = fmt.Sprintf("/guilds/%s/messages/search", target.GuildID)
		query.Set("channel_id", target.ChannelID)
	} else {
		path = fmt.Sprintf("/channels/%s/messages/search", target.ChannelID)
	}

	if !before.IsZero() {
		query.Set("max_id", before.String())
	}

	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return ports.SearchResult{}, err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return ports.SearchResult{}, c.classify(resp)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.SearchResult{}, &domain.TransientError{Err: fmt.Errorf("decode search response: %w", err)}
	}

	result := ports.SearchResult{TotalResults: payload.TotalResults}
	for _, group := range payload.Messages {
		for _, hit := range group {
			if !hit.Hit {
				continue
			}

			result.HitIDs = append(result.HitIDs, hit.ID)
			if hit.Author.ID != authorID {
				continue
			}

			channelID := hit.ChannelID
			if channelID == "" {
				channelID = target.ChannelID
			}

			result.Messages = append(result.Messages, domain.Message{
				ID:        hit.ID,
				ChannelID: channelID,
				AuthorID:  hit.Author.ID,
				Content:   hit.Content,
				Pinned:    hit.Pinned,
				Timestamp: hit.Timestamp,
			})
		}
	}

	return result, nil
}
