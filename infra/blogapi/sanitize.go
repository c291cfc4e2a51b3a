package blogapi

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/ecodeclub/ekit/slice"
	"github.com/microcosm-cc/bluemonday"

	"github.com/CrestNiraj12/blogcomments/domain"
)

var strict = bluemonday.StrictPolicy()

// sanitizeContent strips markup and terminal escape sequences from user text.
func sanitizeContent(s string) string {
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)
	s = ansi.Strip(s)
	return strings.TrimSpace(s)
}

// sanitizeName strips escape sequences from a display name. A name that was
// nothing but escapes becomes the unknown-author name.
func sanitizeName(s string) string {
	s = strings.TrimSpace(ansi.Strip(s))
	if s == "" {
		return domain.UnknownAuthorName
	}
	return s
}

// sanitizeFields cleans the user-facing strings of a decoded comment object.
// Names left blank are dropped so the caller's fallback author applies.
func sanitizeFields(fields map[string]any) {
	if c, ok := fields["content"].(string); ok {
		fields["content"] = sanitizeContent(c)
	}
	author, ok := fields["author"].(map[string]any)
	if !ok {
		return
	}
	if name, ok := author["name"].(string); ok {
		if clean := strings.TrimSpace(ansi.Strip(name)); clean != "" {
			author["name"] = clean
		} else {
			delete(author, "name")
		}
	}
}

func sanitizeTree(comments []domain.Comment) []domain.Comment {
	return slice.Map(comments, func(_ int, c domain.Comment) domain.Comment {
		c.Content = sanitizeContent(c.Content)
		c.Author.Name = sanitizeName(c.Author.Name)
		c.Replies = sanitizeTree(c.Replies)
		return c
	})
}
