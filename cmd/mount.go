package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/registry"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

func init() {
	rootCmd.AddCommand(mountCmd)
}

// mountCmd manages the persisted search path.
var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "Manage the directories and archives mounted on every run",
}

func init() {
	mountCmd.AddCommand(mountAddCmd)

	mountAddCmd.Flags().StringP("point", "p", vfs.Root, "Logical directory the contents appear under")
	mountAddCmd.Flags().BoolP("front", "f", false, "Give the entry precedence over the existing ones")
}

// mountAddCmd checks that a source can be mounted and registers it.
var mountAddCmd = &cobra.Command{
	Use:   "add <source>",
	Short: "Register a directory or archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			point = lo.Must(cmd.Flags().GetString("point"))
			front = lo.Must(cmd.Flags().GetBool("front"))
		)

		// Mount into a scratch namespace first so broken sources are never persisted.
		fs, err := vfs.Init("")
		handleErr(err)
		err = fs.Mount(args[0], point, front)
		_ = fs.Terminate()
		handleErr(err)

		entry, err := registry.Add(args[0], point, front)
		handleErr(err)

		cmd.Printf(
			"%s mounted %s at %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(entry.Source),
			style.Fg(color.Yellow)(entry.Point),
		)
	},
}

func init() {
	mountCmd.AddCommand(mountListCmd)

	mountListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// mountListCmd prints the registered entries in registration order.
var mountListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List registered directories and archives",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := registry.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("nothing is mounted"))
			return
		}

		for _, e := range entries {
			cmd.Printf(
				"%s %s %s %s\n",
				icon.Get(icon.Mount),
				style.Fg(color.Purple)(e.Source),
				style.Fg(color.Yellow)(e.Point),
				style.Faint(fmt.Sprintf("%s, added %s", lo.Ternary(e.Front, "front", "back"), humanize.Time(e.AddedAt))),
			)
		}
	},
}

func init() {
	mountCmd.AddCommand(mountClearCmd)
}

// mountClearCmd forgets every registered entry.
var mountClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every registered directory and archive",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(registry.Clear())
		cmd.Printf("%s registry cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
