package commands

import (
	"github.com/spf13/cobra"

	"github.com/chatmigrate/slack2discord/internal/export"
	"github.com/chatmigrate/slack2discord/internal/importer"
)

// import-paths <path>...: replay selected channel directories or single log
// files. Each path is resolved on its own, so channels from different
// exports can be mixed in one run.
func importPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-paths <path>...",
		Short: "Import specific channel directories or log files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runImport(cmd.Context(), export.ModeSingle, args, importer.Options{})
		},
	}
}
