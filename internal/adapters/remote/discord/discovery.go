package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Channel types as the service numbers them.
const (
	channelTypeGuildText    = 0
	channelTypeDM           = 1
	channelTypeGroupDM      = 3
	channelTypeAnnouncement = 5
	channelTypeForum        = 15
)

type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GuildChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

type DMChannel struct {
	ID         string `json:"id"`
	Type       int    `json:"type"`
	Name       string `json:"name"`
	Recipients []struct {
		Username string `json:"username"`
	} `json:"recipients"`
}

func (ch DMChannel) IsGroup() bool { return ch.Type == channelTypeGroupDM }

func (ch DMChannel) RecipientName() string {
	if len(ch.Recipients) == 0 {
		return "unknown"
	}
	return ch.Recipients[0].Username
}

func (c *Client) Guilds(ctx context.Context) ([]Guild, error) {
	var guilds []Guild
	if err := c.getJSON(ctx, "/users/@me/guilds", &guilds); err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}
	return guilds, nil
}

// GuildChannels returns the guild's searchable text-bearing channels
// (text, announcement, forum).
func (c *Client) GuildChannels(ctx context.Context, guildID string) ([]GuildChannel, error) {
	var channels []GuildChannel
	if err := c.getJSON(ctx, fmt.Sprintf("/guilds/%s/channels", guildID), &channels); err != nil {
		return nil, fmt.Errorf("list guild %s channels: %w", guildID, err)
	}

	text := channels[:0]
	for _, ch := range channels {
		switch ch.Type {
		case channelTypeGuildText, channelTypeAnnouncement, channelTypeForum:
			text = append(text, ch)
		}
	}
	return text, nil
}

// DMChannels returns the account's direct-message and group-DM channels.
func (c *Client) DMChannels(ctx context.Context) ([]DMChannel, error) {
	var channels []DMChannel
	if err := c.getJSON(ctx, "/users/@me/channels", &channels); err != nil {
		return nil, fmt.Errorf("list dm channels: %w", err)
	}

	dms := channels[:0]
	for _, ch := range channels {
		if ch.Type == channelTypeDM || ch.Type == channelTypeGroupDM {
			dms = append(dms, ch)
		}
	}
	return dms, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return c.classify(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
