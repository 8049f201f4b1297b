// Package standupcmder
package standupcmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/standuphq/standup/cmd/standup/chat"
	configcmder "github.com/standuphq/standup/cmd/standup/config"
	geocodecmder "github.com/standuphq/standup/cmd/standup/geocode"
	initcmder "github.com/standuphq/standup/cmd/standup/init"
	runcmder "github.com/standuphq/standup/cmd/standup/run"
	versioncmder "github.com/standuphq/standup/cmd/version"
)

const standupLongDesc string = `Standup is a small team of AI agents that builds web apps with you.

A Business Analyst, a Software Engineer, and a Product Owner take turns
refining your request into a working single-file HTML app. When the
Product Owner signs off, you review the result: approve it and standup
commits and pushes it, or give feedback and the team keeps iterating.

Run a session using:
  standup run "Build a pomodoro timer"`

const standupShortDesc string = "Standup - agile agents that ship"

func NewStandupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standup",
		Short: standupShortDesc,
		Long:  standupLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .standup/ directory location")

	// Add subcommands
	cmd.AddCommand(runcmder.NewRunCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(geocodecmder.NewGeocodeCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
