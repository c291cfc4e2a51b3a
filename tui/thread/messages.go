package thread

import "github.com/CrestNiraj12/blogcomments/domain"

// PageLoadedMsg carries one fetched page of top-level comments.
type PageLoadedMsg struct {
	Page   int
	Reset  bool
	Order  domain.Order
	Result domain.CommentPage
}

// PageErrorMsg reports a failed page fetch.
type PageErrorMsg struct {
	Page  int
	Reset bool
	Order domain.Order
	Err   error
}

// LikeResultMsg is the outcome of a like toggle.
type LikeResultMsg struct {
	ID     string
	Result domain.LikeResult
	Err    error
}

// CreateResultMsg is the outcome of posting a comment or reply.
type CreateResultMsg struct {
	Request domain.NewComment
	Fields  map[string]any
	Err     error
}

// DeleteResultMsg is the outcome of a delete.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// RepliesLoadedMsg is the outcome of a lazy reply fetch.
type RepliesLoadedMsg struct {
	ID      string
	Replies []domain.Comment
	Err     error
}

// RepliesPushedMsg delivers replies published on the bus for a rendered node.
type RepliesPushedMsg struct {
	ParentID string
	Replies  []domain.Comment
}

// OrderChangedMsg is emitted when the user picked a new sort order, so the
// root model can persist it.
type OrderChangedMsg struct {
	Order domain.Order
}
