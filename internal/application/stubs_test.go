package application

import (
	"context"
	"time"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

type fakeSleeper struct {
	sleeps []time.Duration
}

func (f *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.sleeps = append(f.sleeps, d)
	return nil
}

func (f *fakeSleeper) total() time.Duration {
	var sum time.Duration
	for _, d := range f.sleeps {
		sum += d
	}
	return sum
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type remoteCall struct {
	Op        string
	ChannelID string
	MessageID string
	Content   string
}

// stubClient scripts remote behavior per operation and records every
// mutating call in order.
type stubClient struct {
	identity domain.Identity

	searchFn func(target domain.Target, authorID string, before domain.Cursor) (ports.SearchResult, error)
	deleteFn func(channelID, messageID string) error
	editFn   func(channelID, messageID, content string) error
	reactFn  func(channelID, messageID, emoji string) error

	searchCursors []domain.Cursor
	calls         []remoteCall
}

var _ ports.MessageClient = (*stubClient)(nil)

func (s *stubClient) Me(context.Context) (domain.Identity, error) {
	return s.identity, nil
}

func (s *stubClient) Search(_ context.Context, target domain.Target, authorID string, before domain.Cursor) (ports.SearchResult, error) {
	s.searchCursors = append(s.searchCursors, before)
	if s.searchFn == nil {
		return ports.SearchResult{}, nil
	}
	return s.searchFn(target, authorID, before)
}

func (s *stubClient) Delete(_ context.Context, channelID, messageID string) error {
	s.calls = append(s.calls, remoteCall{Op: "delete", ChannelID: channelID, MessageID: messageID})
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(channelID, messageID)
}

func (s *stubClient) Edit(_ context.Context, channelID, messageID, content string) error {
	s.calls = append(s.calls, remoteCall{Op: "edit", ChannelID: channelID, MessageID: messageID, Content: content})
	if s.editFn == nil {
		return nil
	}
	return s.editFn(channelID, messageID, content)
}

func (s *stubClient) React(_ context.Context, channelID, messageID, emoji string) error {
	s.calls = append(s.calls, remoteCall{Op: "react", ChannelID: channelID, MessageID: messageID, Content: emoji})
	if s.reactFn == nil {
		return nil
	}
	return s.reactFn(channelID, messageID, emoji)
}

func (s *stubClient) mutations() []remoteCall {
	var out []remoteCall
	for _, call := range s.calls {
		if call.Op == "delete" || call.Op == "edit" || call.Op == "react" {
			out = append(out, call)
		}
	}
	return out
}

type memStore struct {
	records map[string]domain.ProgressRecord
	saves   int
}

var _ ports.CheckpointStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{records: map[string]domain.ProgressRecord{}}
}

func (m *memStore) Load(context.Context) (map[string]domain.ProgressRecord, error) {
	out := make(map[string]domain.ProgressRecord, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) Save(_ context.Context, record domain.ProgressRecord) error {
	m.saves++
	m.records[record.TargetID] = record
	return nil
}

func guildTarget(channelID string) domain.Target {
	return domain.Target{
		Kind:        domain.TargetKindGuild,
		GuildID:     "guild-1",
		GuildName:   "Test Guild",
		ChannelID:   channelID,
		ChannelName: "general",
		Enabled:     true,
	}
}

func msg(id, content string) domain.Message {
	return domain.Message{
		ID:        id,
		ChannelID: "chan-1",
		AuthorID:  "user-1",
		Content:   content,
	}
}

func batchOf(messages ...domain.Message) ports.SearchResult {
	result := ports.SearchResult{Messages: messages, TotalResults: len(messages)}
	for _, m := range messages {
		result.HitIDs = append(result.HitIDs, m.ID)
	}
	return result
}
