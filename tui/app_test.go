package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/blogcomments/app"
	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/infra/config"
	"github.com/CrestNiraj12/blogcomments/replies"
	"github.com/CrestNiraj12/blogcomments/tui/common"
	"github.com/CrestNiraj12/blogcomments/tui/thread"
)

type nopThreads struct{}

func (nopThreads) FetchPage(context.Context, int64, int, int, domain.Order) (domain.CommentPage, error) {
	return domain.CommentPage{}, nil
}

func (nopThreads) FetchReplies(context.Context, string, int) ([]domain.Comment, error) {
	return nil, domain.ErrNotFound
}

type nopComments struct{}

func (nopComments) Create(context.Context, domain.NewComment) (map[string]any, error) {
	return map[string]any{}, nil
}

func (nopComments) Delete(context.Context, string) error { return nil }

func (nopComments) ToggleLike(context.Context, string) (domain.LikeResult, error) {
	return domain.LikeResult{}, nil
}

func newTestApp(t *testing.T, viewer *app.Viewer, bus *replies.Bus) (App, string) {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), "ui_state.json")
	a := NewApp(Deps{
		Thread: thread.Deps{
			PostID:   7,
			Threads:  nopThreads{},
			Comments: nopComments{},
			Viewer:   viewer,
			Bus:      bus,
			Log:      zerolog.Nop(),
			Initial: []domain.Comment{
				{ID: "c1", Author: domain.Author{ID: "u1", Name: "Alice"}, Content: "first", CreatedAt: time.Now()},
			},
		},
		StatePath: statePath,
		Log:       zerolog.Nop(),
	})
	return a, statePath
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	next, cmd := a.Update(msg)
	out, ok := next.(App)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuitClosesSubscriptions(t *testing.T) {
	bus := replies.NewBus()
	a, _ := newTestApp(t, nil, bus)
	require.Equal(t, 1, bus.Subscribers("c1"))

	_, cmd := update(t, a, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Zero(t, bus.Subscribers("c1"))
}

func TestQuitIgnoredWhileComposing(t *testing.T) {
	bus := replies.NewBus()
	a, _ := newTestApp(t, &app.Viewer{UserID: "u1", Name: "Alice"}, bus)

	a, _ = update(t, a, runes("c"))
	require.True(t, a.thread.Composing())

	a, _ = update(t, a, runes("q"))
	assert.True(t, a.thread.Composing(), "q is typed into the composer")
	assert.Equal(t, 1, bus.Subscribers("c1"))

	_, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNoticeShownUntilNextKey(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	a, _ = update(t, a, common.NoticeMsg{Kind: common.NoticeSuccess, Text: "Comment posted."})
	assert.Contains(t, ansi.Strip(a.View()), "Comment posted.")

	a, _ = update(t, a, runes("j"))
	assert.NotContains(t, ansi.Strip(a.View()), "Comment posted.")
}

func TestOrderChangeIsPersisted(t *testing.T) {
	a, statePath := newTestApp(t, nil, nil)

	_, cmd := update(t, a, thread.OrderChangedMsg{Order: domain.OrderOldest})
	assert.Nil(t, cmd)

	st, err := config.LoadUIState(statePath)
	require.NoError(t, err)
	assert.Equal(t, "oldest", st.Order)
}
