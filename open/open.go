// Package open hands logical files over to host applications.
//
// A logical file may live inside an archive, so it is first exported to the
// temp directory and the exported copy is opened instead.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vres-cli/vres/constant"
	"github.com/vres-cli/vres/filesystem"
	"github.com/vres-cli/vres/vfs"
	"github.com/vres-cli/vres/where"
)

// Loader reads whole logical files.
type Loader interface {
	LoadFile(logical string) ([]byte, error)
}

// Export copies logical into the temp directory, keeping its logical layout, and returns the host path.
// Copies stay until the temp directory is cleared.
func Export(loader Loader, logical string) (string, error) {
	clean, err := vfs.Clean(logical)
	if err != nil {
		return "", err
	}

	data, err := loader.LoadFile(clean)
	if err != nil {
		return "", err
	}

	target := filepath.Join(where.Temp(), "export", filepath.FromSlash(clean))
	if err := filesystem.API().MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return "", err
	}

	if err := filesystem.API().WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("export %s: %w", clean, err)
	}

	return target, nil
}

// File exports logical and starts app on the copy, or the default handler when app is empty.
// It does not wait for the application to exit.
func File(loader Loader, logical, app string) (string, error) {
	target, err := Export(loader, logical)
	if err != nil {
		return "", err
	}

	return target, StartWith(target, app)
}

// Start opens input using the default system handler asynchronously.
func Start(input string) error {
	cmd, ok := command(input)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// StartWith opens input with app asynchronously. An empty app falls back to Start.
func StartWith(input, app string) error {
	if app == "" {
		return Start(input)
	}
	cmd, ok := commandWith(input, app)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	case constant.Android:
		return exec.Command("termux-open", input), true
	default:
		return nil, false
	}
}

func commandWith(input, app string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		// start treats & as a command separator.
		escaped := strings.ReplaceAll(input, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), true
	case constant.Darwin:
		return exec.Command("open", "-a", app, input), true
	case constant.Linux:
		return exec.Command(app, input), true
	case constant.Android:
		return exec.Command("termux-open", "--choose", input), true
	default:
		return nil, false
	}
}
