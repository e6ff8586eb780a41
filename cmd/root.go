// Package cmd implements the command-line interface for vres.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/constant"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/key"
	"github.com/vres-cli/vres/log"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringArrayP("mount", "m", []string{}, "Mount a directory or archive in front of the search path")
	rootCmd.PersistentFlags().StringArrayP("append", "a", []string{}, "Mount a directory or archive at the back of the search path")

	rootCmd.PersistentFlags().StringP("write-dir", "w", "", "Set the host directory that receives writes")
	lo.Must0(rootCmd.MarkPersistentFlagDirname("write-dir"))
	lo.Must0(viper.BindPFlag(key.ResourcesWriteDir, rootCmd.PersistentFlags().Lookup("write-dir")))

	rootCmd.SetOut(os.Stdout)
}

// rootCmd defines the entry point for the vres application.
var rootCmd = &cobra.Command{
	Use:   constant.Vres + " [dir]",
	Short: "Browse and edit a layered virtual filesystem of directories and archives",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse and edit a layered virtual filesystem of directories and archives"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		browseCmd.Run(cmd, args)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		if e := unreported(err); e != nil {
			log.Error(e)
		}
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// warn reports a recoverable problem without stopping the command.
func warn(err error) {
	if err == nil {
		return
	}

	if e := unreported(err); e != nil {
		log.Warn(e)
	}
	for _, e := range flatten(err) {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Mark)), e.Error())
	}
}

// flatten splits an error created by errors.Join, nested or not, into its parts.
func flatten(err error) []error {
	if _, ok := err.(*vfs.Error); ok {
		return []error{err}
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return lo.FlatMap(joined.Unwrap(), func(e error, _ int) []error {
			return flatten(e)
		})
	}

	return []error{err}
}

// unreported drops the parts of err that the virtual filesystem has logged already.
func unreported(err error) error {
	return errors.Join(lo.Reject(flatten(err), func(e error, _ int) bool {
		return vfs.KindOf(e) != nil
	})...)
}
