package discord

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildChannelsFiltersTextBearing(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/guilds/g1/channels", r.URL.Path)
		_, _ = w.Write([]byte(`[
  {"id": "c1", "name": "general", "type": 0},
  {"id": "c2", "name": "voice", "type": 2},
  {"id": "c3", "name": "news", "type": 5},
  {"id": "c4", "name": "help", "type": 15},
  {"id": "c5", "name": "category", "type": 4}
]`))
	})

	channels, err := client.GuildChannels(context.Background(), "g1")
	require.NoError(t, err)

	var ids []string
	for _, ch := range channels {
		ids = append(ids, ch.ID)
	}
	assert.Equal(t, []string{"c1", "c3", "c4"}, ids)
}

func TestDMChannelsFiltersAndNames(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/@me/channels", r.URL.Path)
		_, _ = w.Write([]byte(`[
  {"id": "d1", "type": 1, "recipients": [{"username": "alice"}]},
  {"id": "d2", "type": 3, "name": "trio", "recipients": [{"username": "bob"}, {"username": "carol"}]},
  {"id": "d3", "type": 4}
]`))
	})

	channels, err := client.DMChannels(context.Background())
	require.NoError(t, err)
	require.Len(t, channels, 2)

	assert.False(t, channels[0].IsGroup())
	assert.Equal(t, "alice", channels[0].RecipientName())
	assert.True(t, channels[1].IsGroup())
	assert.Equal(t, "trio", channels[1].Name)
}

func TestGuilds(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/@me/guilds", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": "g1", "name": "Acme"}]`))
	})

	guilds, err := client.Guilds(context.Background())
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, Guild{ID: "g1", Name: "Acme"}, guilds[0])
}

func TestDMChannelRecipientFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", DMChannel{}.RecipientName())
}
