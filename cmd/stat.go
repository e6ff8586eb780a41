package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(statCmd)

	statCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// statCmd describes the file a read of the logical path would return.
var statCmd = &cobra.Command{
	Use:               "stat <path>",
	Short:             "Describe a logical path",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		withFS(cmd, func(fs *vfs.FS) error {
			entry, err := newEntry(fs, args[0])
			if err != nil {
				return withSuggestion(fs, args[0], err)
			}

			if lo.Must(cmd.Flags().GetBool("json")) {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entry)
			}

			var (
				label = style.Fg(color.Purple)
				kind  = lo.Ternary(entry.Dir, "directory", "file")
				size  = "-"
				mod   = "-"
			)

			if !entry.Dir {
				size = fmt.Sprintf("%s (%s bytes)", humanize.Bytes(uint64(entry.Size)), humanize.Comma(entry.Size))
			}

			if !entry.ModTime.IsZero() {
				mod = fmt.Sprintf("%s (%s)", entry.ModTime.Format("2006-01-02 15:04:05"), humanize.Time(entry.ModTime))
			}

			cmd.Printf("%s   %s\n", label("Path"), style.Bold(entry.Path))
			cmd.Printf("%s   %s\n", label("Type"), kind)
			cmd.Printf("%s   %s\n", label("Size"), size)
			cmd.Printf("%s   %s\n", label("Time"), mod)
			cmd.Printf("%s %s\n", label("Source"), lo.Ternary(entry.Source == "", style.Faint("mount point"), entry.Source))
			return nil
		})
	},
}
