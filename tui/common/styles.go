package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// OrderStyle styles the active sort order next to the title.
	OrderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// TaglineStyle styles secondary header text.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true).
			MarginLeft(1)

	// AuthorStyle styles the comment author name.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles comment text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// LikedStyle styles the like counter when the viewer liked the comment.
	LikedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SelectedStyle highlights the selected comment.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// UnselectedStyle gives other comments a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// OwnBadgeStyle marks comments written by the viewer.
	OwnBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true).
			MarginLeft(1)

	// ThreadGuideStyle draws the indentation rail of nested replies.
	ThreadGuideStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#45475A"))

	// HintStyle styles per-comment action hints.
	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// DisabledHintStyle styles actions that are temporarily unavailable.
	DisabledHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#45475A")).
				Strikethrough(true)

	// WarningStyle styles the deep-nesting hint.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454")).
			Italic(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ConfirmStyle styles the delete confirmation prompt.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true).
			Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
