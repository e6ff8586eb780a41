package browse

import (
	"path"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vres-cli/vres/internal/ui"
	"github.com/vres-cli/vres/key"
	"github.com/vres-cli/vres/open"
	"github.com/vres-cli/vres/util"
	"github.com/vres-cli/vres/vfs"
	"golang.org/x/exp/slices"
)

type dirLoadedMsg struct {
	dir   string
	items []list.Item

	// focus is the entry name to select once the items are shown.
	focus string
}

type previewLoadedMsg preview

// Init loads the starting directory.
func (b *statefulBubble) Init() tea.Cmd {
	return b.loadDir(b.dir, "")
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case dirLoadedMsg:
		return b, tea.Batch(cmd, b.showDir(msg))
	case previewLoadedMsg:
		b.preview = preview(msg)
		b.previewOffset = 0
		b.newState(previewState)
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		switch b.state {
		case listState:
			return b, tea.Batch(cmd, b.updateList(msg))
		case previewState:
			return b, tea.Batch(cmd, b.updatePreview(msg))
		case errorState:
			switch {
			case bubblesKey.Matches(msg, b.keymap.back):
				b.previousState()
			case bubblesKey.Matches(msg, b.keymap.quit):
				return b, tea.Quit
			}
			return b, cmd
		}
	}

	if b.state == listState {
		var listCmd tea.Cmd
		b.listC, listCmd = b.listC.Update(msg)
		cmd = tea.Batch(cmd, listCmd)
	}

	return b, cmd
}

func (b *statefulBubble) updateList(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	// Keys typed into the filter prompt belong to the list.
	if b.listC.FilterState() == list.Filtering {
		b.listC, cmd = b.listC.Update(msg)
		return cmd
	}

	switch {
	case bubblesKey.Matches(msg, b.keymap.back):
		if b.listC.FilterState() == list.FilterApplied {
			b.listC.ResetFilter()
			return nil
		}
		if b.dir == vfs.Root {
			return nil
		}
		return b.loadDir(path.Dir(b.dir), path.Base(b.dir))
	case bubblesKey.Matches(msg, b.keymap.open):
		item, ok := b.listC.SelectedItem().(*listItem)
		if !ok {
			return nil
		}
		if item.isDir() {
			return b.loadDir(item.logical, "")
		}
		return b.loadPreview(item)
	case bubblesKey.Matches(msg, b.keymap.openExternal):
		item, ok := b.listC.SelectedItem().(*listItem)
		if !ok || item.isDir() {
			return nil
		}
		return b.openExternally(item.logical)
	case bubblesKey.Matches(msg, b.keymap.reload):
		var selected string
		if item, ok := b.listC.SelectedItem().(*listItem); ok {
			selected = item.name
		}
		return tea.Batch(b.loadDir(b.dir, selected), ui.Notify("Reloaded"))
	}

	b.listC, cmd = b.listC.Update(msg)
	return cmd
}

func (b *statefulBubble) updatePreview(msg tea.KeyMsg) tea.Cmd {
	lines := len(b.previewLines())
	page := util.Max(1, b.previewHeight())
	last := util.Max(0, lines-page)

	switch {
	case bubblesKey.Matches(msg, b.keymap.back):
		b.previousState()
	case bubblesKey.Matches(msg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.openExternal):
		return b.openExternally(b.preview.logical)
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	case bubblesKey.Matches(msg, b.keymap.up):
		b.previewOffset--
	case bubblesKey.Matches(msg, b.keymap.down):
		b.previewOffset++
	case bubblesKey.Matches(msg, b.keymap.left):
		b.previewOffset -= page
	case bubblesKey.Matches(msg, b.keymap.right):
		b.previewOffset += page
	case bubblesKey.Matches(msg, b.keymap.top):
		b.previewOffset = 0
	case bubblesKey.Matches(msg, b.keymap.bottom):
		b.previewOffset = last
	}

	b.previewOffset = lo.Clamp(b.previewOffset, 0, last)
	return nil
}

func (b *statefulBubble) showDir(msg dirLoadedMsg) tea.Cmd {
	b.dir = msg.dir
	b.listC.Title = msg.dir
	b.listC.ResetFilter()

	cmd := b.listC.SetItems(msg.items)

	index := 0
	if msg.focus != "" {
		if _, i, ok := lo.FindIndexOf(msg.items, func(item list.Item) bool {
			return item.(*listItem).name == msg.focus
		}); ok {
			index = i
		}
	}
	b.listC.Select(index)

	return cmd
}

// loadDir lists dir in the background. focus names the entry to select afterwards.
func (b *statefulBubble) loadDir(dir, focus string) tea.Cmd {
	return func() tea.Msg {
		names, err := b.fs.ListFiles(dir)
		if err != nil {
			return err
		}

		items := lo.Map(names, func(name string, _ int) *listItem {
			logical := path.Join(dir, name)
			item := &listItem{
				name:    name,
				logical: logical,
				source:  b.fs.RealDir(logical).OrEmpty(),
			}

			if info, err := b.fs.Stat(logical); err == nil {
				item.info = info
			}

			return item
		})

		// Directories first, each group keeps its sorted order.
		slices.SortStableFunc(items, func(x, y *listItem) int {
			switch {
			case x.isDir() == y.isDir():
				return 0
			case x.isDir():
				return -1
			default:
				return 1
			}
		})

		return dirLoadedMsg{
			dir:   dir,
			focus: focus,
			items: lo.Map(items, func(item *listItem, _ int) list.Item {
				return item
			}),
		}
	}
}

// loadPreview reads the head of the file behind item in the background.
func (b *statefulBubble) loadPreview(item *listItem) tea.Cmd {
	return func() tea.Msg {
		data, err := b.fs.LoadFile(item.logical)
		if err != nil {
			return err
		}

		p := previewLoadedMsg{
			logical: item.logical,
			source:  item.source,
			size:    len(data),
		}

		if util.IsBinary(data) {
			p.binary = true
			p.text = "binary content, " + humanize.Bytes(uint64(len(data)))
			return p
		}

		if limit := viper.GetInt(key.BrowsePreviewBytes); limit > 0 && len(data) > limit {
			data = data[:limit]
			p.truncated = true
		}

		p.text = string(data)
		return p
	}
}

// openExternally exports logical and hands it to the configured application.
func (b *statefulBubble) openExternally(logical string) tea.Cmd {
	return func() tea.Msg {
		if _, err := open.File(b.fs, logical, viper.GetString(key.OpenApp)); err != nil {
			return err
		}
		return ui.NotifyMsg("Opened " + path.Base(logical))
	}
}
