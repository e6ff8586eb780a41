package cmd

import (
	"errors"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vres-cli/vres/key"
	"github.com/vres-cli/vres/log"
	"github.com/vres-cli/vres/registry"
	"github.com/vres-cli/vres/vfs"
	"github.com/vres-cli/vres/where"
)

// openFS builds the namespace every command works on. Sources are mounted in this order:
// resources.search_path, registered entries, --mount flags in front, then --append flags
// and the program directory at the back. Reads check the write directory before any of them.
func openFS(cmd *cobra.Command) (*vfs.FS, error) {
	fs, err := vfs.Init(os.Args[0], vfs.WithLogger(log.Logger()))
	if err != nil {
		return nil, err
	}

	var (
		front = lo.Must(cmd.Flags().GetStringArray("mount"))
		back  = lo.Must(cmd.Flags().GetStringArray("append"))
		errs  []error
	)

	for _, source := range viper.GetStringSlice(key.ResourcesSearchPath) {
		if err := fs.AddSearchPath(source, false); err != nil {
			errs = append(errs, err)
		}
	}

	if err := registry.Apply(fs); err != nil {
		errs = append(errs, err)
	}

	// Prepending in reverse keeps the flags in the order they were given.
	for _, source := range lo.Reverse(append([]string{}, front...)) {
		if err := fs.AddSearchPath(source, true); err != nil {
			_ = fs.Terminate()
			return nil, err
		}
	}

	for _, source := range back {
		if err := fs.AddSearchPath(source, false); err != nil {
			_ = fs.Terminate()
			return nil, err
		}
	}

	if viper.GetBool(key.ResourcesMountBase) {
		if err := fs.AddSearchPath(fs.BaseDir(), false); err != nil {
			errs = append(errs, err)
		}
	}

	writeDir := viper.GetString(key.ResourcesWriteDir)
	if writeDir == "" {
		writeDir = where.Data()
	}

	if err := fs.SetWriteDir(writeDir); err != nil {
		_ = fs.Terminate()
		return nil, err
	}

	warn(errors.Join(errs...))
	return fs, nil
}

// withFS opens the namespace, runs fn and terminates the namespace afterwards.
func withFS(cmd *cobra.Command, fn func(fs *vfs.FS) error) {
	fs, err := openFS(cmd)
	handleErr(err)

	err = fn(fs)
	handleErr(errors.Join(err, fs.Terminate()))
}
