package common

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(5 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tc := range cases {
		if got := RelativeTime(tc.at, now); got != tc.want {
			t.Fatalf("RelativeTime(%v)=%q want %q", tc.at, got, tc.want)
		}
	}
	if got := RelativeTime(now.AddDate(0, -3, 0), now); !strings.Contains(got, "2024") {
		t.Fatalf("old timestamps should be dates: %q", got)
	}
}

func TestClampLinesToWidth(t *testing.T) {
	got := ClampLinesToWidth("abcdef\nxy", 3)
	if got != "abc\nxy" {
		t.Fatalf("unexpected clamp: %q", got)
	}
	styled := ErrorStyle.Render("long error line")
	if w := ansi.StringWidth(ClampLinesToWidth(styled, 4)); w > 4 {
		t.Fatalf("styled line too wide: %d", w)
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "reply", "replies"); got != "1 reply" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Pluralize(0, "reply", "replies"); got != "0 replies" {
		t.Fatalf("unexpected: %q", got)
	}
}
