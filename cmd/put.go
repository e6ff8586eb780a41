package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/filesystem"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/util"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(putCmd)

	putCmd.Flags().BoolP("yes", "y", false, "Overwrite without asking")
	putCmd.Flags().BoolP("parents", "p", false, "Create missing parent directories")
}

// putCmd stores a host file, or stdin, under a logical path in the write directory.
var putCmd = &cobra.Command{
	Use:   "put <path> [host-file]",
	Short: "Write a file into the write directory",
	Long: `Write a file into the write directory.
The content is read from host-file, or from stdin when host-file is omitted.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			target    = args[0]
			fromStdin = len(args) == 1
			yes       = lo.Must(cmd.Flags().GetBool("yes"))
		)

		withFS(cmd, func(fs *vfs.FS) error {
			if fs.Exists(target) && !yes {
				if fs.IsDir(target) {
					return fmt.Errorf("%s is a directory", target)
				}

				if fromStdin || !util.IsTerminal(os.Stdin) {
					return fmt.Errorf("%s already exists, use --yes to overwrite it", target)
				}

				var overwrite bool
				err := survey.AskOne(&survey.Confirm{
					Message: fmt.Sprintf("%s already exists. Overwrite?", target),
					Default: false,
				}, &overwrite)
				if err != nil {
					return err
				}

				if !overwrite {
					return errors.New("aborted")
				}
			}

			var (
				data []byte
				err  error
			)

			if fromStdin {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = filesystem.API().ReadFile(args[1])
			}

			if err != nil {
				return err
			}

			if lo.Must(cmd.Flags().GetBool("parents")) {
				if err := fs.Mkdir(parentOf(target)); err != nil {
					return err
				}
			}

			if err := fs.SaveFile(target, data); err != nil {
				return err
			}

			cmd.Printf(
				"%s wrote %s to %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				humanize.Bytes(uint64(len(data))),
				style.Fg(color.Purple)(target),
			)
			return nil
		})
	},
}
