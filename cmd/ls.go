package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/util"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().BoolP("long", "l", false, "Show sizes, modification times and providing sources")
	lsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	lsCmd.MarkFlagsMutuallyExclusive("long", "json")
}

// lsCmd lists the merged contents of a logical directory.
var lsCmd = &cobra.Command{
	Use:               "ls [dir]",
	Short:             "List the merged contents of a logical directory",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionLogicalPaths,
	Run: func(cmd *cobra.Command, args []string) {
		dir := lo.FirstOr(args, vfs.Root)

		withFS(cmd, func(fs *vfs.FS) error {
			names, err := fs.ListFiles(dir)
			if err != nil {
				return withSuggestion(fs, dir, err)
			}

			if !lo.Must(cmd.Flags().GetBool("long")) && !lo.Must(cmd.Flags().GetBool("json")) {
				for _, name := range names {
					cmd.Println(name)
				}
				return nil
			}

			var (
				entries []*Entry
				errs    []error
			)

			for _, name := range names {
				entry, err := newEntry(fs, path.Join(dir, name))
				if err != nil {
					errs = append(errs, err)
					continue
				}
				entries = append(entries, entry)
			}

			if lo.Must(cmd.Flags().GetBool("json")) {
				if entries == nil {
					entries = []*Entry{}
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(entries); err != nil {
					return err
				}
			} else {
				for _, entry := range entries {
					cmd.Println(entry.Long())
				}
				cmd.Println(style.Faint(util.Quantify(len(entries), "entry", "entries")))
			}

			if len(errs) > 0 {
				return fmt.Errorf("some entries could not be described: %w", errors.Join(errs...))
			}
			return nil
		})
	},
}
