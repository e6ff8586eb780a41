package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/util"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().BoolP("yes", "y", false, "Remove without asking")
}

// rmCmd deletes a file or an empty directory from the write directory.
var rmCmd = &cobra.Command{
	Use:               "rm <path>",
	Short:             "Remove a file or an empty directory from the write directory",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		withFS(cmd, func(fs *vfs.FS) error {
			if !lo.Must(cmd.Flags().GetBool("yes")) && util.IsTerminal(os.Stdin) {
				var confirmed bool
				err := survey.AskOne(&survey.Confirm{
					Message: fmt.Sprintf("Remove %s?", args[0]),
					Default: false,
				}, &confirmed)
				if err != nil {
					return err
				}

				if !confirmed {
					return errors.New("aborted")
				}
			}

			if err := fs.Remove(args[0]); err != nil {
				return withSuggestion(fs, args[0], err)
			}

			cmd.Printf("%s removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
			return nil
		})
	},
}
