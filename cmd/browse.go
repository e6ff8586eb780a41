package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/browse"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

// browseCmd opens the interactive browser.
var browseCmd = &cobra.Command{
	Use:               "browse [dir]",
	Short:             "Explore the namespace interactively",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		withFS(cmd, func(fs *vfs.FS) error {
			return browse.Run(fs, &browse.Options{
				Start: lo.FirstOr(args, vfs.Root),
			})
		})
	},
}
