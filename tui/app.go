package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/blogcomments/infra/config"
	"github.com/CrestNiraj12/blogcomments/tui/common"
	"github.com/CrestNiraj12/blogcomments/tui/thread"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Thread    thread.Deps
	StatePath string // where the chosen sort order is remembered; empty disables
	Log       zerolog.Logger
}

// App is the root Bubble Tea model. It owns the status bar and hands every
// other message to the thread view.
type App struct {
	deps   Deps
	thread thread.Model
	keys   common.KeyMap
	notice *common.NoticeMsg
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		thread: thread.New(deps.Thread),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the thread view.
func (a App) Init() tea.Cmd {
	return a.thread.Init()
}

// Update handles global keys and status messages and routes the rest.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a.quit()
		}
		if key.Matches(msg, a.keys.Quit) && !a.thread.IsCapturingKeys() {
			return a.quit()
		}
		// Any key press dismisses the previous notice.
		a.notice = nil

	case common.NoticeMsg:
		a.notice = &msg
		return a, nil

	case thread.OrderChangedMsg:
		a.saveOrder(msg)
		return a, nil
	}

	var cmd tea.Cmd
	a.thread, cmd = a.thread.Update(msg)
	return a, cmd
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.thread.Close()
	return a, tea.Quit
}

func (a App) saveOrder(msg thread.OrderChangedMsg) {
	if a.deps.StatePath == "" {
		return
	}
	if err := config.SaveUIState(a.deps.StatePath, config.UIState{Order: string(msg.Order)}); err != nil {
		a.deps.Log.Warn().Err(err).Msg("saving ui state failed")
	}
}

// View renders the thread and the latest notice.
func (a App) View() string {
	s := a.thread.View()
	if a.notice != nil && a.notice.Text != "" {
		s += "\n  " + a.notice.Render()
	}
	return s
}
