package app

import (
	"context"

	"github.com/CrestNiraj12/blogcomments/domain"
)

// ThreadService reads a post's comment tree.
type ThreadService interface {
	// FetchPage returns one page of top-level comments with their replies
	// inlined, in the given server-side order.
	FetchPage(ctx context.Context, postID int64, page, limit int, order domain.Order) (domain.CommentPage, error)

	// FetchReplies returns the direct replies of one comment.
	FetchReplies(ctx context.Context, commentID string, limit int) ([]domain.Comment, error)
}
