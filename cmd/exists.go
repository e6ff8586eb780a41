package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(existsCmd)

	existsCmd.Flags().BoolP("quiet", "q", false, "Print nothing, report only through the exit code")
}

// existsCmd reports whether a logical path resolves. It exits with 1 when it does not.
var existsCmd = &cobra.Command{
	Use:               "exists <path>",
	Short:             "Check whether a logical path exists",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		var found bool

		withFS(cmd, func(fs *vfs.FS) error {
			found = fs.Exists(args[0])
			return nil
		})

		if !lo.Must(cmd.Flags().GetBool("quiet")) {
			if found {
				cmd.Printf("%s %s exists\n", style.Fg(color.Green)(icon.Get(icon.Success)), args[0])
			} else {
				cmd.Printf("%s %s does not exist\n", style.Fg(color.Red)(icon.Get(icon.Fail)), args[0])
			}
		}

		if !found {
			os.Exit(1)
		}
	},
}
