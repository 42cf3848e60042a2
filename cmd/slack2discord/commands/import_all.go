package commands

import (
	"github.com/spf13/cobra"

	"github.com/chatmigrate/slack2discord/internal/export"
	"github.com/chatmigrate/slack2discord/internal/importer"
)

// import-all <export-root>: replay every channel of an unpacked export.
func importAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-all <export-root>",
		Short: "Import every channel of an unpacked Slack export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runImport(cmd.Context(), export.ModeTree, args, importer.Options{})
		},
	}
}
