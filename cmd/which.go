package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(whichCmd)
}

// whichCmd prints the host directory or archive that provides a logical path.
var whichCmd = &cobra.Command{
	Use:               "which <path>",
	Short:             "Show which search path entry provides a logical path",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		withFS(cmd, func(fs *vfs.FS) error {
			if _, err := fs.Stat(args[0]); err != nil {
				return withSuggestion(fs, args[0], err)
			}

			source, ok := fs.RealDir(args[0]).Get()
			if !ok {
				cmd.Println("mount point, no source provides it directly")
				return nil
			}

			cmd.Println(source)
			return nil
		})
	},
}
