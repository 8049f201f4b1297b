// Package geocodecmder provides the geocode command for looking up
// coordinates of a place name.
package geocodecmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/standuphq/standup/pkg/cliui"
	"github.com/standuphq/standup/pkg/config"
	"github.com/standuphq/standup/pkg/geocode"
)

const geocodeLongDesc string = `Look up the coordinates of a place.

Resolves a free-form place name to latitude and longitude through the
configured geocoding API. The GEOCODING_API_KEY environment variable
must be set.

Examples:
  standup geocode "Reykjavik"
  standup geocode "1600 Pennsylvania Ave, Washington DC"`

const geocodeShortDesc string = "Look up coordinates of a place"

type geocodeCommander struct {
	baseURL string
}

func NewGeocodeCmd() *cobra.Command {
	cmder := &geocodeCommander{}

	cmd := &cobra.Command{
		Use:   "geocode <place>",
		Short: geocodeShortDesc,
		Long:  geocodeLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagGeocodeURL,
			})

			cmder.baseURL = v.GetString("geocode.base_url")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagGeocodeURL, &cmder.baseURL)

	return cmd
}

func (c *geocodeCommander) run(ctx context.Context, place string) error {
	client, err := geocode.NewClient(geocode.Config{
		BaseURL: c.baseURL,
		APIKey:  os.Getenv("GEOCODING_API_KEY"),
	})
	if err != nil {
		return err
	}

	pos, err := client.Lookup(ctx, place)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s %s\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(pos.DisplayName),
	)
	fmt.Printf("  %s %.7f\n", cliui.KeyStyle.Render("Latitude: "), pos.Lat)
	fmt.Printf("  %s %.7f\n\n", cliui.KeyStyle.Render("Longitude:"), pos.Lon)

	return nil
}
