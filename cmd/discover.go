package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daiimus/paracord/internal/adapters/config"
	"github.com/daiimus/paracord/internal/adapters/remote/discord"
	"github.com/daiimus/paracord/internal/adapters/render/report"
	"github.com/daiimus/paracord/internal/domain"
)

func newDiscoverCmd(app *app) *cobra.Command {
	var flagToken string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List your guild channels, DMs, and group DMs",
		Long:  "discover enumerates every scope the account can search and prints it; with --output it writes a ready-to-edit run configuration covering all of them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, identity, err := runValidateSpinner(cmd.Context(), cmd.ErrOrStderr(), app, flagToken)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as @%s (ID: %s)\n", identity.Username, identity.ID)

			targets, err := discoverTargets(cmd, client)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Targets(targets))

			if outputPath != "" {
				if err := config.Write(outputPath, domain.DefaultSettings(), targets); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s (review it before running)\n", outputPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&flagToken, "token", "t", "", "Auth token (falls back to "+tokenEnvKey+" or "+tokenEnvFile+")")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write a run configuration covering every discovered target")

	return cmd
}

func discoverTargets(cmd *cobra.Command, client *discord.Client) ([]domain.Target, error) {
	ctx := cmd.Context()

	guilds, err := client.Guilds(ctx)
	if err != nil {
		return nil, err
	}

	var targets []domain.Target
	for _, guild := range guilds {
		channels, err := client.GuildChannels(ctx, guild.ID)
		if err != nil {
			return nil, err
		}
		for _, channel := range channels {
			targets = append(targets, domain.Target{
				Kind:        domain.TargetKindGuild,
				GuildID:     guild.ID,
				GuildName:   guild.Name,
				ChannelID:   channel.ID,
				ChannelName: channel.Name,
				Enabled:     true,
			})
		}
	}

	dms, err := client.DMChannels(ctx)
	if err != nil {
		return nil, err
	}
	for _, dm := range dms {
		if dm.IsGroup() {
			name := dm.Name
			if name == "" {
				name = "Unnamed Group"
			}
			targets = append(targets, domain.Target{
				Kind:      domain.TargetKindGroupDM,
				ChannelID: dm.ID,
				GroupName: name,
				Enabled:   true,
			})
			continue
		}
		targets = append(targets, domain.Target{
			Kind:      domain.TargetKindDM,
			ChannelID: dm.ID,
			Recipient: dm.RecipientName(),
			Enabled:   true,
		})
	}

	return targets, nil
}
