package blogapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CrestNiraj12/blogcomments/domain"
)

// threadService implements app.ThreadService using the blog API.
type threadService struct {
	client *Client
}

// NewThreadService creates a ThreadService backed by the blog API.
func NewThreadService(client *Client) *threadService {
	return &threadService{client: client}
}

func (s *threadService) FetchPage(ctx context.Context, postID int64, page, limit int, order domain.Order) (domain.CommentPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order", string(order))
	path := fmt.Sprintf("/comments/post/%d/nested?%s", postID, q.Encode())

	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("fetching comments page %d: %w", page, err)
	}

	raws, meta, err := listOf(data)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("fetching comments page %d: %w", page, err)
	}
	comments := sanitizeTree(domain.NormalizeAll(raws, ""))

	return domain.CommentPage{
		Comments: comments,
		Meta:     pageMeta(meta, page, limit, len(comments)),
	}, nil
}

// pageMeta reads the pagination block, filling gaps so that a response
// without meta is treated as the last page.
func pageMeta(m map[string]any, page, limit, count int) domain.PageMeta {
	meta := domain.PageMeta{CurrentPage: page, TotalPages: page, TotalItems: count, ItemsPerPage: limit}
	if m == nil {
		return meta
	}
	if v, ok := intField(m, "currentPage"); ok && v > 0 {
		meta.CurrentPage = v
	}
	if v, ok := intField(m, "totalPages"); ok && v >= 0 {
		meta.TotalPages = v
	}
	if v, ok := intField(m, "totalItems"); ok && v >= 0 {
		meta.TotalItems = v
	}
	if v, ok := intField(m, "itemsPerPage"); ok && v > 0 {
		meta.ItemsPerPage = v
	}
	return meta
}

func (s *threadService) FetchReplies(ctx context.Context, commentID string, limit int) ([]domain.Comment, error) {
	path := fmt.Sprintf("/comments/replies/%s?limit=%d", url.PathEscape(commentID), limit)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching replies of %s: %w", commentID, err)
	}
	raws, _, err := listOf(data)
	if err != nil {
		return nil, fmt.Errorf("fetching replies of %s: %w", commentID, err)
	}
	return sanitizeTree(domain.NormalizeAll(raws, commentID)), nil
}
