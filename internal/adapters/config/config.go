// Package config loads and validates the run configuration: the ordered
// target list plus the settings block. All validation happens here, at
// startup, before any remote call is issued.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/spf13/viper"
)

type settingsSchema struct {
	SearchDelay       *float64 `mapstructure:"search_delay" json:"search_delay"`
	DeleteDelay       *float64 `mapstructure:"delete_delay" json:"delete_delay"`
	SkipPinned        *bool    `mapstructure:"skip_pinned" json:"skip_pinned"`
	SkipMeowed        bool     `mapstructure:"skip_meowed" json:"skip_meowed"`
	MaxRetries        *int     `mapstructure:"max_retries" json:"max_retries"`
	DryRun            bool     `mapstructure:"dry_run" json:"dry_run"`
	MeowMode          string   `mapstructure:"meow_mode" json:"meow_mode,omitempty"`
	BackoffMultiplier *float64 `mapstructure:"backoff_multiplier" json:"backoff_multiplier,omitempty"`
}

type targetSchema struct {
	Type          string `mapstructure:"type" json:"type"`
	GuildID       string `mapstructure:"guild_id" json:"guild_id,omitempty"`
	GuildName     string `mapstructure:"guild_name" json:"guild_name,omitempty"`
	ChannelID     string `mapstructure:"channel_id" json:"channel_id"`
	ChannelName   string `mapstructure:"channel_name" json:"channel_name,omitempty"`
	RecipientName string `mapstructure:"recipient_name" json:"recipient_name,omitempty"`
	GroupName     string `mapstructure:"group_name" json:"group_name,omitempty"`
	Enabled       *bool  `mapstructure:"enabled" json:"enabled,omitempty"`
}

// Load reads the configuration file and returns validated settings and
// the target list in file order.
func Load(path string) (domain.Settings, []domain.Target, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return domain.Settings{}, nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidConfig, path, err)
	}

	var rawSettings settingsSchema
	if err := v.UnmarshalKey("settings", &rawSettings); err != nil {
		return domain.Settings{}, nil, fmt.Errorf("%w: decode settings: %v", domain.ErrInvalidConfig, err)
	}

	var rawTargets []targetSchema
	if err := v.UnmarshalKey("targets", &rawTargets); err != nil {
		return domain.Settings{}, nil, fmt.Errorf("%w: decode targets: %v", domain.ErrInvalidConfig, err)
	}

	settings := settingsFromSchema(rawSettings)
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, nil, err
	}

	targets, err := targetsFromSchema(rawTargets)
	if err != nil {
		return domain.Settings{}, nil, err
	}

	return settings, targets, nil
}

func settingsFromSchema(raw settingsSchema) domain.Settings {
	settings := domain.DefaultSettings()

	if raw.SearchDelay != nil {
		settings.SearchDelay = secondsToDuration(*raw.SearchDelay)
	}
	if raw.DeleteDelay != nil {
		settings.DeleteDelay = secondsToDuration(*raw.DeleteDelay)
	}
	if raw.SkipPinned != nil {
		settings.SkipPinned = *raw.SkipPinned
	}
	settings.SkipMeowed = raw.SkipMeowed
	if raw.MaxRetries != nil {
		settings.MaxRetries = *raw.MaxRetries
	}
	settings.DryRun = raw.DryRun
	if raw.MeowMode != "" {
		settings.MeowMode = domain.MeowMode(raw.MeowMode)
	}
	if raw.BackoffMultiplier != nil {
		settings.BackoffMultiplier = *raw.BackoffMultiplier
	}

	return settings
}

func targetsFromSchema(raw []targetSchema) ([]domain.Target, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no targets configured", domain.ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(raw))
	targets := make([]domain.Target, 0, len(raw))
	for i, entry := range raw {
		target := domain.Target{
			Kind:        domain.TargetKind(entry.Type),
			ChannelID:   entry.ChannelID,
			GuildID:     entry.GuildID,
			GuildName:   entry.GuildName,
			ChannelName: entry.ChannelName,
			Recipient:   entry.RecipientName,
			GroupName:   entry.GroupName,
			Enabled:     entry.Enabled == nil || *entry.Enabled,
		}

		if !target.Kind.Valid() {
			return nil, fmt.Errorf("%w: target %d: unknown type %q", domain.ErrInvalidConfig, i, entry.Type)
		}
		if target.ChannelID == "" {
			return nil, fmt.Errorf("%w: target %d: channel_id is empty", domain.ErrInvalidConfig, i)
		}
		if target.Kind == domain.TargetKindGuild && target.GuildID == "" {
			return nil, fmt.Errorf("%w: target %d: guild target without guild_id", domain.ErrInvalidConfig, i)
		}
		if seen[target.ID()] {
			return nil, fmt.Errorf("%w: target %d: duplicate channel_id %s", domain.ErrInvalidConfig, i, target.ChannelID)
		}
		seen[target.ID()] = true

		targets = append(targets, target)
	}

	return targets, nil
}

// Write renders a configuration file for the given settings and targets,
// used by the discovery command to hand the operator an editable start.
func Write(path string, settings domain.Settings, targets []domain.Target) error {
	searchDelay := settings.SearchDelay.Seconds()
	deleteDelay := settings.DeleteDelay.Seconds()
	skipPinned := settings.SkipPinned
	maxRetries := settings.MaxRetries

	file := struct {
		Settings settingsSchema `json:"settings"`
		Targets  []targetSchema `json:"targets"`
	}{
		Settings: settingsSchema{
			SearchDelay: &searchDelay,
			DeleteDelay: &deleteDelay,
			SkipPinned:  &skipPinned,
			SkipMeowed:  settings.SkipMeowed,
			MaxRetries:  &maxRetries,
			DryRun:      settings.DryRun,
			MeowMode:    string(settings.MeowMode),
		},
	}

	for _, target := range targets {
		file.Targets = append(file.Targets, targetSchema{
			Type:          string(target.Kind),
			GuildID:       target.GuildID,
			GuildName:     target.GuildName,
			ChannelID:     target.ChannelID,
			ChannelName:   target.ChannelName,
			RecipientName: target.Recipient,
			GroupName:     target.GroupName,
		})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
