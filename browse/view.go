package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wrap"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// previewHeaderLines is the number of lines above the preview body.
const previewHeaderLines = 3

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case listState:
		output = listExtraPaddingStyle.Render(b.listC.View())
	case previewState:
		output = b.viewPreview()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) previewLines() []string {
	width := util.Max(b.width, 1)
	return strings.Split(wrap.String(b.preview.text, width), "\n")
}

func (b *statefulBubble) previewHeight() int {
	return b.height - previewHeaderLines - lipgloss.Height(b.helpC.View(b.keymap))
}

func (b *statefulBubble) viewPreview() string {
	meta := []string{humanize.Bytes(uint64(b.preview.size))}
	if b.preview.source != "" {
		meta = append(meta, b.preview.source)
	}
	if b.preview.truncated {
		meta = append(meta, "truncated")
	}

	lines := b.previewLines()
	if height := b.previewHeight(); height > 0 {
		end := util.Min(len(lines), b.previewOffset+height)
		lines = lines[util.Min(b.previewOffset, end):end]
	}

	body := lines
	if b.preview.binary {
		body = []string{style.Fg(color.Yellow)(icon.Get(icon.File) + " " + b.preview.text)}
	}

	return b.renderLines(
		true,
		append([]string{
			style.Title(b.preview.logical),
			style.Truncate(b.width)(style.Faint(strings.Join(meta, " · "))),
			"",
		}, body...),
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(fmt.Sprint(b.lastError)), b.width)

	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
