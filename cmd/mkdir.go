package cmd

import (
	"path"

	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(mkdirCmd)
}

// mkdirCmd creates a directory, with its parents, in the write directory.
var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory in the write directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withFS(cmd, func(fs *vfs.FS) error {
			if err := fs.Mkdir(args[0]); err != nil {
				return err
			}

			cmd.Printf("%s created %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
			return nil
		})
	},
}

// parentOf returns the logical directory holding logical.
func parentOf(logical string) string {
	return path.Dir(path.Clean(vfs.Root + logical))
}
