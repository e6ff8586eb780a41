package cmd

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/suggest"
	"github.com/vres-cli/vres/vfs"
)

// withSuggestion extends a not-found error with the closest existing paths.
func withSuggestion(fs *vfs.FS, logical string, err error) error {
	if !errors.Is(err, vfs.ErrNotFound) {
		return err
	}

	candidates := suggest.Many(fs, logical, 3)
	if len(candidates) == 0 {
		return err
	}

	return fmt.Errorf(
		"%w, did you mean %s?",
		err,
		strings.Join(lo.Map(candidates, func(c string, _ int) string {
			return style.Fg(color.Yellow)(c)
		}), ", "),
	)
}

// completionLogicalPaths completes the first argument against the namespace.
func completionLogicalPaths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	fs, err := openFS(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer fs.Terminate()

	dir := vfs.Root
	if i := strings.LastIndex(toComplete, "/"); i >= 0 {
		dir = toComplete[:i+1]
	}

	names, err := fs.ListFiles(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return lo.FilterMap(names, func(name string, _ int) (string, bool) {
		candidate := path.Join(dir, name)
		if !strings.HasPrefix(toComplete, "/") {
			candidate = strings.TrimPrefix(candidate, "/")
		}
		if fs.IsDir(candidate) {
			candidate += "/"
		}
		return candidate, strings.HasPrefix(candidate, toComplete)
	}), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
