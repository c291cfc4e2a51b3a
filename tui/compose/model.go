package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/blogcomments/infra/editor"
)

// CharLimit caps inline comments.
const CharLimit = 2000

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete. Content is empty and Err nil
// when the user cancelled.
type DoneMsg struct {
	Content  string
	ParentID string // empty for a top-level comment
	Err      error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model is a comment composer: an inline textarea rendered under the reply
// target, or $EDITOR run through tea.ExecProcess.
type Model struct {
	mode     mode
	editor   *editor.EnvEditor
	parentID string
	target   string
	status   string
	textarea textarea.Model // Only used in inline mode
	tmpPath  string         // Temp file path for editor mode
}

// NewInline creates a composer with an inline textarea. parentID is empty for
// a top-level comment.
func NewInline(parentID, placeholder string, width int) Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = CharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(clampWidth(width))
	ta.SetHeight(4)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		parentID: parentID,
		textarea: ta,
	}
}

// NewEditor creates a composer that opens $EDITOR. target is shown in the
// file header, e.g. "Commenting on post 42".
func NewEditor(ed *editor.EnvEditor, parentID, target string) Model {
	return Model{
		mode:     editorMode,
		editor:   ed,
		parentID: parentID,
		target:   target,
		status:   "Opening editor...",
	}
}

func clampWidth(w int) int {
	switch {
	case w <= 0:
		return 72
	case w < 20:
		return 20
	default:
		return w
	}
}

// ParentID returns the comment being replied to, or "" for a top-level comment.
func (m Model) ParentID() string { return m.parentID }

// Inline reports whether the composer renders in place.
func (m Model) Inline() bool { return m.mode == inlineMode }

// Value returns the current inline text.
func (m Model) Value() string { return m.textarea.Value() }

// SetValue replaces the inline text.
func (m *Model) SetValue(s string) { m.textarea.SetValue(s) }

// SetWidth resizes the inline textarea.
func (m *Model) SetWidth(w int) { m.textarea.SetWidth(clampWidth(w)) }

// SetStatus shows s below the textarea instead of the key hints.
func (m *Model) SetStatus(s string) { m.status = s }

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.ExecProcess to
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	parentID := m.parentID
	if m.editor == nil {
		return done(DoneMsg{ParentID: parentID, Err: fmt.Errorf("no editor configured")})
	}
	cmd, tmpPath, err := m.editor.Cmd("", m.target)
	if err != nil {
		return done(DoneMsg{ParentID: parentID, Err: fmt.Errorf("preparing editor: %w", err)})
	}
	m.tmpPath = tmpPath

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case editorFinishedMsg:
		if m.mode != editorMode {
			return m, nil
		}
		if msg.err != nil {
			return m, done(DoneMsg{ParentID: m.parentID, Err: fmt.Errorf("editor: %w", msg.err)})
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{ParentID: m.parentID, Err: err})
		}
		return m, done(DoneMsg{Content: content, ParentID: m.parentID})

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{ParentID: m.parentID})

		case "ctrl+d":
			return m, done(DoneMsg{Content: m.textarea.Value(), ParentID: m.parentID})
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
