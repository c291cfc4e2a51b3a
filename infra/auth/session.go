package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/CrestNiraj12/blogcomments/app"
	"github.com/CrestNiraj12/blogcomments/domain"
)

// SessionUser is the identity stored next to the tokens.
type SessionUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Session is the on-disk login state.
type Session struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *SessionUser `json:"user,omitempty"`
}

// FileSession keeps the session in a JSON file and renews it through the
// API's refresh endpoint. It implements TokenProvider, Refresher and
// app.SessionService.
type FileSession struct {
	path    string
	baseURL string
	http    *http.Client

	mu sync.Mutex
}

// NewFileSession creates a session backed by path. baseURL is the API root
// used for token refresh.
func NewFileSession(path, baseURL string) *FileSession {
	return &FileSession{
		path:    path,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Load reads the session file. A missing file yields an empty session.
func (s *FileSession) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileSession) load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session from %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Session{}, nil
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("parsing session %s: %w", s.path, err)
	}
	sess.AccessToken = strings.TrimSpace(sess.AccessToken)
	return sess, nil
}

// Save writes sess to disk with owner-only permissions.
func (s *FileSession) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(sess)
}

func (s *FileSession) save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// AccessToken returns the stored token, or "" when logged out.
func (s *FileSession) AccessToken() (string, error) {
	sess, err := s.Load()
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// CurrentViewer returns the logged-in user, or nil when there is none.
func (s *FileSession) CurrentViewer() (*app.Viewer, error) {
	sess, err := s.Load()
	if err != nil {
		return nil, err
	}
	if sess.AccessToken == "" || sess.User == nil || sess.User.ID == "" {
		return nil, nil
	}
	return &app.Viewer{
		UserID: sess.User.ID,
		Name:   sess.User.Name,
		Avatar: sess.User.Avatar,
		Role:   sess.User.Role,
	}, nil
}

type refreshPayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Data *refreshPayload `json:"data"`
	refreshPayload
}

// Refresh trades the stored refresh token for a new access token and
// persists it.
func (s *FileSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load()
	if err != nil {
		return err
	}
	if sess.RefreshToken == "" {
		return domain.ErrLoginRequired
	}

	body, err := json.Marshal(map[string]string{"refreshToken": sess.RefreshToken})
	if err != nil {
		return fmt.Errorf("encoding refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("refreshing session: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading refresh response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ErrLoginRequired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("session refresh returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out refreshResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}
	payload := out.refreshPayload
	if out.Data != nil {
		payload = *out.Data
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("session refresh returned no access token")
	}

	sess.AccessToken = payload.AccessToken
	if payload.RefreshToken != "" {
		sess.RefreshToken = payload.RefreshToken
	}
	return s.save(sess)
}
