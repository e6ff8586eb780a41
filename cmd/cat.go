package cmd

import (
	"errors"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/util"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(catCmd)

	catCmd.Flags().BoolP("force", "f", false, "Write binary content even when stdout is a terminal")
	catCmd.Flags().BoolP("text", "t", false, "Stop at the first zero byte, as text files are loaded")
}

// catCmd prints the content a read of the logical path would return.
var catCmd = &cobra.Command{
	Use:               "cat <path>",
	Short:             "Print the content of a logical file",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		withFS(cmd, func(fs *vfs.FS) error {
			if lo.Must(cmd.Flags().GetBool("text")) {
				text, err := fs.LoadTextFile(args[0])
				if err != nil {
					return withSuggestion(fs, args[0], err)
				}
				cmd.Print(text)
				return nil
			}

			data, err := fs.LoadFile(args[0])
			if err != nil {
				return withSuggestion(fs, args[0], err)
			}

			if util.IsBinary(data) && util.IsTerminal(os.Stdout) && !lo.Must(cmd.Flags().GetBool("force")) {
				return errors.New("refusing to print binary content to a terminal, use --force")
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		})
	},
}
