package thread

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/blogcomments/app"
	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/tui/common"
)

type fetchCall struct {
	Page  int
	Limit int
	Order domain.Order
}

type stubThreads struct {
	mu      sync.Mutex
	pages   map[int]domain.CommentPage
	errs    map[int]error
	replies map[string][]domain.Comment
	calls   []fetchCall
}

func (s *stubThreads) FetchPage(_ context.Context, _ int64, page, limit int, order domain.Order) (domain.CommentPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fetchCall{Page: page, Limit: limit, Order: order})
	if err := s.errs[page]; err != nil {
		return domain.CommentPage{}, err
	}
	return s.pages[page], nil
}

func (s *stubThreads) FetchReplies(_ context.Context, id string, _ int) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.replies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (s *stubThreads) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubComments struct {
	mu        sync.Mutex
	like      domain.LikeResult
	likeErr   error
	fields    map[string]any
	createErr error
	deleteErr error
	likes     []string
	creates   []domain.NewComment
	deletes   []string
}

func (s *stubComments) Create(_ context.Context, req domain.NewComment) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates = append(s.creates, req)
	return s.fields, s.createErr
}

func (s *stubComments) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, id)
	return s.deleteErr
}

func (s *stubComments) ToggleLike(_ context.Context, id string) (domain.LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes = append(s.likes, id)
	return s.like, s.likeErr
}

var (
	testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	alice   = &app.Viewer{UserID: "u1", Name: "Alice"}
	admin   = &app.Viewer{UserID: "u9", Name: "Root", Role: app.RoleAdmin}
)

func makeComment(id, authorID string, replies ...domain.Comment) domain.Comment {
	return domain.Comment{
		ID:        id,
		Author:    domain.Author{ID: authorID, Name: "Author " + authorID},
		Content:   "content of " + id,
		Likes:     1,
		Replies:   replies,
		CreatedAt: testNow.Add(-time.Hour),
	}
}

// sampleTree: c1 (u1) > r1 (u2) > r2 (u1); c2 (u2).
func sampleTree() []domain.Comment {
	return []domain.Comment{
		makeComment("c1", "u1", makeComment("r1", "u2", makeComment("r2", "u1"))),
		makeComment("c2", "u2"),
	}
}

func newTestModel(deps Deps) Model {
	if deps.Threads == nil {
		deps.Threads = &stubThreads{}
	}
	if deps.Comments == nil {
		deps.Comments = &stubComments{}
	}
	deps.Log = zerolog.Nop()
	m := New(deps)
	m.now = func() time.Time { return testNow }
	return m
}

// runCmd executes cmd and flattens batches. Commands that block, such as the
// bus listener, are abandoned after a short wait.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// drive runs cmd and feeds every resulting message back into the model until
// no work is left. Notices are returned instead of being applied.
func drive(t *testing.T, m Model, cmd tea.Cmd) (Model, []common.NoticeMsg, []tea.Msg) {
	t.Helper()
	var (
		notices []common.NoticeMsg
		other   []tea.Msg
	)
	queue := runCmd(cmd)
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("message loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		switch msg := msg.(type) {
		case spinner.TickMsg:
			continue
		case common.NoticeMsg:
			notices = append(notices, msg)
			continue
		case OrderChangedMsg:
			other = append(other, msg)
			continue
		}
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, runCmd(next)...)
	}
	return m, notices, other
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, []common.NoticeMsg) {
	t.Helper()
	var all []common.NoticeMsg
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(keyMsg(k))
		var notices []common.NoticeMsg
		m, notices, _ = drive(t, m, cmd)
		all = append(all, notices...)
	}
	return m, all
}
