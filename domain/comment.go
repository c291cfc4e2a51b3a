package domain

import "time"

const (
	// UnknownAuthorID and UnknownAuthorName identify comments whose author the
	// API did not describe.
	UnknownAuthorID   = "unknown"
	UnknownAuthorName = "Usuario"
)

// Author is the public identity attached to a comment.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UnknownAuthor returns the sentinel author used when the payload has none.
func UnknownAuthor() Author {
	return Author{ID: UnknownAuthorID, Name: UnknownAuthorName}
}

// Comment is a node of a post's comment tree. Replies are owned by value and
// kept in display order; ParentID is only a back-reference.
type Comment struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	HasLiked  *bool     `json:"hasLiked,omitempty"`
	Replies   []Comment `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
	PostID    int64     `json:"postId,omitempty"`
	ParentID  string    `json:"parentId,omitempty"`
}

// IsTopLevel reports whether the comment hangs directly off the post.
func (c Comment) IsTopLevel() bool {
	return c.ParentID == ""
}

// Liked reports the viewer's like state, false when unknown.
func (c Comment) Liked() bool {
	return c.HasLiked != nil && *c.HasLiked
}

// PageMeta describes one page of top-level comments.
type PageMeta struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// CommentPage is a page of top-level comments with their inlined replies.
type CommentPage struct {
	Comments []Comment
	Meta     PageMeta
}

// NewComment is the request body for creating a comment or a reply.
type NewComment struct {
	Content  string
	PostID   int64
	ParentID string // empty for a top-level comment
}

// LikeResult is the single internal shape of a like toggle response.
// Nil fields were absent from the response and must not overwrite state.
type LikeResult struct {
	Liked *bool
	Count *int
}

// Apply folds the result into c, keeping prior values for absent fields.
func (r LikeResult) Apply(c Comment) Comment {
	if r.Count != nil {
		n := *r.Count
		if n < 0 {
			n = 0
		}
		c.Likes = n
	}
	if r.Liked != nil {
		liked := *r.Liked
		c.HasLiked = &liked
	}
	return c
}
