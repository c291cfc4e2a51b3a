package thread

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/blogcomments/app"
	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/infra/editor"
	"github.com/CrestNiraj12/blogcomments/replies"
	"github.com/CrestNiraj12/blogcomments/tui/common"
	"github.com/CrestNiraj12/blogcomments/tui/compose"
)

const (
	defaultLimit = 10
	inboxSize    = 64
)

// Deps holds everything a thread view needs. Plain struct, not a DI container.
type Deps struct {
	PostID   int64
	Threads  app.ThreadService
	Comments app.CommentService
	Viewer   *app.Viewer // nil when browsing anonymously
	Loader   *replies.Loader
	Bus      *replies.Bus
	Editor   *editor.EnvEditor
	Log      zerolog.Logger
	Limit    int
	Order    domain.Order
	Initial  []domain.Comment // skips the first network fetch when non-nil
}

// Model is the comment thread of one post: its tree, pagination and the
// viewer's pending interactions.
type Model struct {
	postID   int64
	threads  app.ThreadService
	comments app.CommentService
	viewer   *app.Viewer
	loader   *replies.Loader
	bus      *replies.Bus
	editor   *editor.EnvEditor
	log      zerolog.Logger
	now      func() time.Time

	// fetch state
	tree          []domain.Comment
	page          int
	limit         int
	order         domain.Order
	hasMore       bool
	meta          domain.PageMeta
	loading       bool
	inFlight      map[int]bool
	initialLoaded bool

	// interaction state
	composer      compose.Model
	composing     bool
	submitting    bool
	liking        map[string]bool
	deleting      map[string]bool
	confirmDelete string

	// lazy replies
	loadingReplies map[string]bool
	inbox          chan RepliesPushedMsg
	subs           map[string]func()

	// ui state
	keys       common.KeyMap
	spinner    spinner.Model
	width      int
	height     int
	selectedID string
	collapsed  map[string]bool
	showHints  bool
}

// New creates a thread model. The first page is requested by Init unless
// initial comments were supplied or there is no post.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	limit := deps.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	order := deps.Order
	if !order.Valid() {
		order = domain.DefaultOrder
	}

	m := Model{
		postID:         deps.PostID,
		threads:        deps.Threads,
		comments:       deps.Comments,
		viewer:         deps.Viewer,
		loader:         deps.Loader,
		bus:            deps.Bus,
		editor:         deps.Editor,
		log:            deps.Log,
		now:            time.Now,
		tree:           []domain.Comment{},
		page:           1,
		limit:          limit,
		order:          order,
		inFlight:       make(map[int]bool),
		liking:         make(map[string]bool),
		deleting:       make(map[string]bool),
		loadingReplies: make(map[string]bool),
		inbox:          make(chan RepliesPushedMsg, inboxSize),
		subs:           make(map[string]func()),
		keys:           common.DefaultKeyMap(),
		spinner:        s,
		collapsed:      make(map[string]bool),
	}

	switch {
	case deps.Initial != nil:
		m.tree = domain.NormalizeComments(deps.Initial, "")
		m.initialLoaded = true
	case m.postID == 0:
		m.initialLoaded = true
	default:
		m.loading = true
		m.inFlight[1] = true
	}
	m.syncSubscriptions()
	return m
}

// Init starts the first page fetch and the bus listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForPush()}
	if !m.initialLoaded && m.inFlight[1] {
		cmds = append(cmds, m.spinner.Tick, m.pageCmd(1, true, m.order))
	}
	return tea.Batch(cmds...)
}

// Comments returns the current top-level comments.
func (m Model) Comments() []domain.Comment { return m.tree }

// Loading reports whether a page fetch is in flight.
func (m Model) Loading() bool { return m.loading }

// HasMore reports whether further pages exist.
func (m Model) HasMore() bool { return m.hasMore }

// Page returns the last loaded page.
func (m Model) Page() int { return m.page }

// Meta returns the pagination metadata of the last loaded page.
func (m Model) Meta() domain.PageMeta { return m.meta }

// Order returns the active sort order.
func (m Model) Order() domain.Order { return m.order }

// Composing reports whether a composer is open, so the root model does not
// steal its keys.
func (m Model) Composing() bool { return m.composing }

// IsCapturingKeys reports whether the view currently owns plain keys such as
// q: an open composer, the key dialog or a pending delete prompt.
func (m Model) IsCapturingKeys() bool {
	return m.composing || m.showHints || m.confirmDelete != ""
}

// SelectedID returns the ID of the selected comment.
func (m Model) SelectedID() string {
	if node, ok := m.selectedNode(); ok {
		return node.Comment.ID
	}
	return ""
}

// Close drops every bus subscription held by the view.
func (m Model) Close() {
	for id, unregister := range m.subs {
		unregister()
		delete(m.subs, id)
	}
}
