package domain

import "fmt"

type TargetKind string

const (
	TargetKindGuild   TargetKind = "guild"
	TargetKindDM      TargetKind = "dm"
	TargetKindGroupDM TargetKind = "group_dm"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetKindGuild, TargetKindDM, TargetKindGroupDM:
		return true
	}
	return false
}

// Target is one deletable scope: a channel within a guild, a direct-message
// channel, or a group DM. Targets are loaded once from configuration and
// never mutated afterwards; the channel ID doubles as the stable identifier
// for checkpoint records.
type Target struct {
	Kind        TargetKind
	ChannelID   string
	GuildID     string
	GuildName   string
	ChannelName string
	Recipient   string
	GroupName   string
	Enabled     bool
}

func (t Target) ID() string { return t.ChannelID }

func (t Target) DisplayName() string {
	switch t.Kind {
	case TargetKindGuild:
		return fmt.Sprintf("#%s (%s)", t.ChannelName, t.GuildName)
	case TargetKindDM:
		return fmt.Sprintf("DM: @%s", t.Recipient)
	case TargetKindGroupDM:
		return fmt.Sprintf("Group: %s", t.GroupName)
	}
	return t.ChannelID
}
