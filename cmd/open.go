package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/key"
	"github.com/vres-cli/vres/open"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringP("app", "A", "", "Application to open the file with")
	lo.Must0(viper.BindPFlag(key.OpenApp, openCmd.Flags().Lookup("app")))
}

// openCmd exports a logical file to the temp directory and opens the copy.
var openCmd = &cobra.Command{
	Use:               "open <path>",
	Short:             "Open a logical file with a host application",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		withFS(cmd, func(fs *vfs.FS) error {
			target, err := open.File(fs, args[0], viper.GetString(key.OpenApp))
			if err != nil {
				return withSuggestion(fs, args[0], err)
			}

			cmd.Printf("%s opened %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Faint(target))
			return nil
		})
	},
}
