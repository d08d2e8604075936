package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daiimus/paracord/internal/application"
	"github.com/daiimus/paracord/internal/domain"
)

func TestRunHeader(t *testing.T) {
	t.Parallel()

	settings := domain.DefaultSettings()
	out := RunHeader(settings, 3)

	assert.Contains(t, out, "Paracord run")
	assert.Contains(t, out, "targets: 3")
	assert.NotContains(t, out, "meow mode", "off mode is not worth announcing")
	assert.NotContains(t, out, "DRY RUN")

	settings.MeowMode = domain.MeowModeEditAndDelete
	settings.DryRun = true
	out = RunHeader(settings, 1)
	assert.Contains(t, out, "meow mode: edit_and_delete")
	assert.Contains(t, out, "DRY RUN")
}

func TestSummary(t *testing.T) {
	t.Parallel()

	out := Summary(application.Summary{
		Deleted:     10,
		Overwritten: 4,
		Ghosts:      2,
		Skipped:     1,
		Failed:      3,
		RateLimited: 5,
		TargetsDone: 2,
	}, 90*time.Second)

	assert.Contains(t, out, "deleted: 10")
	assert.Contains(t, out, "overwritten: 4")
	assert.Contains(t, out, "ghosts: 2")
	assert.Contains(t, out, "failed: 3")
	assert.Contains(t, out, "rate limited 5 times")
}

func TestSummaryOmitsZeroOverwrites(t *testing.T) {
	t.Parallel()

	out := Summary(application.Summary{Deleted: 1}, time.Second)
	assert.NotContains(t, out, "overwritten")
	assert.Contains(t, out, "failed: 0")
}

func TestTargetsGroupsByKind(t *testing.T) {
	t.Parallel()

	out := Targets([]domain.Target{
		{Kind: domain.TargetKindDM, ChannelID: "d1", Recipient: "alice"},
		{Kind: domain.TargetKindGuild, ChannelID: "c1", ChannelName: "general", GuildName: "Acme"},
		{Kind: domain.TargetKindGroupDM, ChannelID: "g1", GroupName: "trio"},
	})

	assert.Contains(t, out, "total: 3")
	assert.Contains(t, out, "Guild channels")
	assert.Contains(t, out, "Direct messages")
	assert.Contains(t, out, "Group DMs")
	assert.Contains(t, out, "#general (Acme)")
	assert.Contains(t, out, "DM: @alice")
}

func TestTargetsEmpty(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Targets(nil), "Nothing found.")
}
