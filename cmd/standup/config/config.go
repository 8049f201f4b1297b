// Package configcmder provides the config command for managing persistent
// standup configuration stored in the .standup/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent standup configuration.

Configuration is stored as config.toml in the .standup/ directory and
provides default values for command flags. CLI flags always take
precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  model.name, model.max_tokens,
  session.max_rounds,
  publish.branch, publish.artifact_path,
  geocode.base_url

API keys are never stored in the config file; set ANTHROPIC_API_KEY and
GEOCODING_API_KEY in the environment instead.

Use subcommands to get, set, or list configuration values:
  standup config set <key> <value>    Set a configuration value
  standup config get <key>            Get a configuration value
  standup config list                 List all configuration values

Examples:
  standup config set model.name claude-sonnet-4-20250514
  standup config set session.max_rounds 12
  standup config get publish.branch
  standup config list`

const configShortDesc string = "Manage persistent standup configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
