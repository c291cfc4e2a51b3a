package blogapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/blogcomments/domain"
)

// commentService implements app.CommentService using the blog API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the blog API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

type createRequest struct {
	Content  string  `json:"content"`
	PostID   int64   `json:"postId"`
	ParentID *string `json:"parentId"`
}

// Create posts a comment or reply and returns whatever comment fields the
// server echoed back. Both {data:{...}} and a bare object are accepted.
func (s *commentService) Create(ctx context.Context, req domain.NewComment) (map[string]any, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, domain.ErrEmptyComment
	}
	body := createRequest{Content: content, PostID: req.PostID}
	if req.ParentID != "" {
		parent := req.ParentID
		body.ParentID = &parent
	}

	data, err := s.client.PostJSON(ctx, "/comments", body)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}, nil
	}
	v, err := decodeLoose(data)
	if err != nil {
		s.client.log.Warn().Err(err).Msg("undecodable create response")
		return map[string]any{}, nil
	}
	fields, ok := unwrapData(v).(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	sanitizeFields(fields)
	return fields, nil
}

func (s *commentService) Delete(ctx context.Context, commentID string) error {
	path := "/comments/" + url.PathEscape(commentID)
	if _, err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

// ToggleLike flips the viewer's like. The canonical response is
// {data:{liked, likesCount}}; the flat {liked, likesCount|count} form is
// still accepted. Absent fields stay nil.
func (s *commentService) ToggleLike(ctx context.Context, commentID string) (domain.LikeResult, error) {
	data, err := s.client.PostJSON(ctx, "/likes/comment", map[string]string{"commentId": commentID})
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("toggling like: %w", err)
	}
	return parseLikeResult(data), nil
}

func parseLikeResult(data []byte) domain.LikeResult {
	var res domain.LikeResult
	if len(strings.TrimSpace(string(data))) == 0 {
		return res
	}
	v, err := decodeLoose(data)
	if err != nil {
		return res
	}
	m, ok := unwrapData(v).(map[string]any)
	if !ok {
		return res
	}
	if liked, ok := boolField(m, "liked"); ok {
		res.Liked = &liked
	}
	if n, ok := intField(m, "likesCount", "count"); ok {
		res.Count = &n
	}
	return res
}
