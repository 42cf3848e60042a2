package commands

import (
	"github.com/spf13/cobra"

	"github.com/chatmigrate/slack2discord/internal/export"
	"github.com/chatmigrate/slack2discord/internal/importer"
)

// import-here --channel <name> <path>...: replay the given logs into one
// existing channel regardless of where they came from.
func importHereCmd() *cobra.Command {
	var channel string

	cmd := &cobra.Command{
		Use:   "import-here --channel <name> <path>...",
		Short: "Replay the given logs into one existing channel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runImport(cmd.Context(), export.ModeSingle, args, importer.Options{TargetChannel: channel})
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "destination channel name")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}
