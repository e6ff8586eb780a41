// Package browse provides an interactive terminal browser over a vfs namespace.
package browse

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vres-cli/vres/vfs"
)

// Options encapsulates the runtime configuration for the browser.
type Options struct {
	// Start is the logical directory the browser opens in.
	Start string
}

// Run opens the browser at options.Start and blocks until the user quits.
func Run(fs *vfs.FS, options *Options) error {
	start, err := vfs.Clean(options.Start)
	if err != nil {
		return err
	}

	bubble := newBubble(fs, options)
	bubble.dir = start

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
