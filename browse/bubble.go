package browse

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/vres-cli/vres/internal/ui"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/util"
	"github.com/vres-cli/vres/vfs"
)

// statefulBubble is the browser model.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	fs  *vfs.FS
	dir string

	keymap *statefulKeymap

	listC list.Model
	helpC help.Model

	preview       preview
	previewOffset int

	notifier *ui.Model

	width, height int

	lastError error

	options *Options
}

// preview is the loaded head of a file shown in previewState.
type preview struct {
	logical   string
	source    string
	size      int
	text      string
	binary    bool
	truncated bool
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState switches to s and remembers the state it came from.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.statesHistory.Push(b.state)
	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.listC.SetSize(listWidth, listHeight)
	b.listC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func newBubble(fs *vfs.FS, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		fs:            fs,
		dir:           vfs.Root,
		keymap:        keymap,
		notifier:      &ui.Model{},
		options:       options,
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.listC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.listC.KeyMap = keymap.forList()
	bubble.listC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.listC.Styles.NoItems = paddingStyle
	bubble.listC.StatusMessageLifetime = time.Second * 3
	bubble.listC.SetStatusBarItemName("entry", "entries")

	bubble.helpC = help.New()

	bubble.setState(listState)
	return &bubble
}
