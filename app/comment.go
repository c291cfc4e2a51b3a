package app

import (
	"context"

	"github.com/CrestNiraj12/blogcomments/domain"
)

// CommentService creates, deletes and likes comments.
type CommentService interface {
	// Create publishes a comment or a reply. The response shape varies between
	// API versions, so the unwrapped server object is returned as decoded JSON
	// for the caller to layer over the request (see domain.Provisional).
	Create(ctx context.Context, req domain.NewComment) (map[string]any, error)

	// Delete removes a comment and its replies.
	Delete(ctx context.Context, commentID string) error

	// ToggleLike flips the viewer's like on a comment.
	ToggleLike(ctx context.Context, commentID string) (domain.LikeResult, error)
}
