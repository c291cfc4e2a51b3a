package app

import (
	"strings"

	"github.com/CrestNiraj12/blogcomments/domain"
)

const RoleAdmin = "admin"

// Viewer is the authenticated user. A nil *Viewer means nobody is logged in.
type Viewer struct {
	UserID string
	Name   string
	Avatar string
	Role   string
}

// SessionService exposes the stored login.
type SessionService interface {
	// CurrentViewer returns nil without error when no session exists.
	CurrentViewer() (*Viewer, error)
}

// IsAdmin reports elevated privilege.
func (v *Viewer) IsAdmin() bool {
	return v != nil && strings.EqualFold(v.Role, RoleAdmin)
}

// Owns reports whether c was written by the viewer.
func (v *Viewer) Owns(c domain.Comment) bool {
	return v != nil && v.UserID != "" && c.Author.ID == v.UserID
}

// CanDelete is the admin-or-owner rule.
func (v *Viewer) CanDelete(c domain.Comment) bool {
	return v.IsAdmin() || v.Owns(c)
}

// Author is the viewer as a comment author, used for locally created comments.
func (v *Viewer) Author() domain.Author {
	if v == nil {
		return domain.UnknownAuthor()
	}
	return domain.Author{ID: v.UserID, Name: v.Name, Avatar: v.Avatar}
}
