package app

import (
	"testing"

	"github.com/CrestNiraj12/blogcomments/domain"
)

func TestViewerPermissions(t *testing.T) {
	own := domain.Comment{ID: "c1", Author: domain.Author{ID: "u1"}}
	other := domain.Comment{ID: "c2", Author: domain.Author{ID: "u2"}}

	var anon *Viewer
	if anon.CanDelete(own) || anon.IsAdmin() || anon.Owns(own) {
		t.Fatalf("nil viewer must not have permissions")
	}
	if anon.Author() != domain.UnknownAuthor() {
		t.Fatalf("nil viewer should map to the unknown author")
	}

	user := &Viewer{UserID: "u1", Name: "Ana"}
	if !user.CanDelete(own) || user.CanDelete(other) {
		t.Fatalf("owner rule mismatch")
	}

	admin := &Viewer{UserID: "u9", Role: "Admin"}
	if !admin.CanDelete(other) {
		t.Fatalf("admin should be able to delete any comment")
	}

	unknown := &Viewer{Name: "no id"}
	if unknown.Owns(domain.Comment{Author: domain.Author{ID: ""}}) {
		t.Fatalf("empty ids must not match")
	}
}
