package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalize turns any comment-like payload into a Comment that satisfies the
// tree invariants. It never fails: missing or malformed fields get defaults.
// Normalizing an already normalized Comment returns an equal Comment.
func Normalize(raw any) Comment {
	return normalize(raw, "")
}

// NormalizeReply normalizes raw as a reply of parentID. parentID is only used
// when the payload carries no parent of its own.
func NormalizeReply(raw any, parentID string) Comment {
	return normalize(raw, parentID)
}

// NormalizeAll normalizes every entry, threading parentID into entries that
// lack one. The result is never nil.
func NormalizeAll(raws []any, parentID string) []Comment {
	out := make([]Comment, 0, len(raws))
	for _, raw := range raws {
		out = append(out, normalize(raw, parentID))
	}
	return out
}

// NormalizeComments is NormalizeAll for already typed comments.
func NormalizeComments(in []Comment, parentID string) []Comment {
	out := make([]Comment, 0, len(in))
	for _, c := range in {
		out = append(out, normalizeComment(c, parentID))
	}
	return out
}

// Provisional builds the comment that represents a just-created comment. The
// request supplies the baseline, the viewer is the fallback author, and any
// field present in the server response wins.
func Provisional(req NewComment, viewer Author, server map[string]any) Comment {
	m := map[string]any{
		"content": req.Content,
		"author": map[string]any{
			"id":     viewer.ID,
			"name":   viewer.Name,
			"avatar": viewer.Avatar,
		},
	}
	if req.PostID != 0 {
		m["postId"] = req.PostID
	}
	if req.ParentID != "" {
		m["parentId"] = req.ParentID
	}
	for k, v := range server {
		if v == nil {
			continue
		}
		if k == "author" {
			if a, ok := v.(map[string]any); ok {
				mergeAuthor(m["author"].(map[string]any), a)
				continue
			}
		}
		m[k] = v
	}
	return normalize(m, req.ParentID)
}

// mergeAuthor copies the non-blank fields of src over dst.
func mergeAuthor(dst, src map[string]any) {
	for _, k := range []string{"id", "name", "avatar"} {
		if v := stringOf(src[k]); v != "" {
			dst[k] = v
		}
	}
}

func normalize(raw any, parentID string) Comment {
	switch v := raw.(type) {
	case Comment:
		return normalizeComment(v, parentID)
	case *Comment:
		if v == nil {
			return defaultComment(parentID)
		}
		return normalizeComment(*v, parentID)
	case map[string]any:
		return normalizeMap(v, parentID)
	case json.RawMessage:
		return normalizeJSON(v, parentID)
	case []byte:
		return normalizeJSON(v, parentID)
	default:
		return defaultComment(parentID)
	}
}

func normalizeJSON(data []byte, parentID string) Comment {
	var decoded any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return defaultComment(parentID)
	}
	return normalize(decoded, parentID)
}

func defaultComment(parentID string) Comment {
	return Comment{
		ID:        uuid.NewString(),
		Author:    UnknownAuthor(),
		Replies:   []Comment{},
		CreatedAt: time.Now().UTC(),
		ParentID:  parentID,
	}
}

func normalizeComment(c Comment, parentID string) Comment {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	c.Author = normalizeAuthor(c.Author)
	if c.Likes < 0 {
		c.Likes = 0
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.ParentID == "" {
		c.ParentID = parentID
	}
	replies := make([]Comment, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, normalizeComment(r, c.ID))
	}
	c.Replies = replies
	return c
}

func normalizeAuthor(a Author) Author {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = UnknownAuthorID
	}
	if strings.TrimSpace(a.Name) == "" {
		a.Name = UnknownAuthorName
	}
	return a
}

func normalizeMap(m map[string]any, parentID string) Comment {
	c := Comment{
		ID:        stringOf(m["id"]),
		Content:   contentOf(m["content"]),
		Likes:     likesOf(m),
		CreatedAt: timeOf(m["createdAt"]),
		PostID:    int64Of(m["postId"]),
		ParentID:  stringOf(m["parentId"]),
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if liked, ok := m["hasLiked"].(bool); ok {
		c.HasLiked = &liked
	}
	if c.ParentID == "" {
		c.ParentID = parentID
	}

	switch author := m["author"].(type) {
	case map[string]any:
		c.Author = normalizeAuthor(Author{
			ID:     stringOf(author["id"]),
			Name:   stringOf(author["name"]),
			Avatar: stringOf(author["avatar"]),
		})
	case Author:
		c.Author = normalizeAuthor(author)
	default:
		if id := stringOf(m["authorId"]); id != "" {
			c.Author = Author{ID: id, Name: UnknownAuthorName}
		} else {
			c.Author = UnknownAuthor()
		}
	}

	c.Replies = []Comment{}
	switch replies := m["replies"].(type) {
	case []any:
		c.Replies = NormalizeAll(replies, c.ID)
	case []Comment:
		c.Replies = NormalizeComments(replies, c.ID)
	}
	return c
}

func contentOf(v any) string {
	s, _ := v.(string)
	return s
}

func likesOf(m map[string]any) int {
	v, ok := m["likes"]
	if !ok || v == nil {
		v = m["likesCount"]
	}
	n := int64Of(v)
	if n < 0 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		if s == math.Trunc(s) && !math.IsInf(s, 0) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func int64Of(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i
		}
	}
	return 0
}

func timeOf(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		if !t.IsZero() {
			return t
		}
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed
			}
		}
	}
	return time.Now().UTC()
}
