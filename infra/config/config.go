package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL        = "https://api.blog.example"
	defaultPageSize      = 10
	defaultReplyCacheTTL = 2 * time.Minute
	defaultReplyTimeout  = 5 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	APIURL        string // e.g. "https://api.blog.example"
	SessionPath   string // JSON session written by the blog's login flow
	UIStatePath   string
	LogFile       string
	LogLevel      string
	PageSize      int
	ReplyCacheTTL time.Duration
	ReplyTimeout  time.Duration
}

// Load reads configuration from environment variables, after loading an
// optional .env file from the working directory.
//
//	BLOG_API_URL             API base URL (default: https://api.blog.example)
//	BLOG_SESSION             Session file (default: ~/.config/blogcomments/session.json)
//	BLOG_UI_STATE            UI state file (default: ~/.config/blogcomments/ui_state.json)
//	BLOG_LOG_FILE            Log file (default: ~/.config/blogcomments/blogcomments.log)
//	BLOG_LOG_LEVEL           debug, info, warn or error (default: info)
//	BLOG_COMMENTS_PAGE_SIZE  Top-level comments per page (default: 10)
//	BLOG_REPLY_CACHE_TTL     Reply cache lifetime (default: 2m)
//	BLOG_REPLY_TIMEOUT       Lazy reply fetch timeout (default: 5s)
func Load() (Config, error) {
	_ = godotenv.Load()

	apiURL, err := parseAPIURL(getEnv("BLOG_API_URL", defaultAPIURL))
	if err != nil {
		return Config{}, err
	}

	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}

	pageSize, err := getIntEnv("BLOG_COMMENTS_PAGE_SIZE", defaultPageSize)
	if err != nil {
		return Config{}, err
	}
	if pageSize <= 0 {
		return Config{}, fmt.Errorf("invalid BLOG_COMMENTS_PAGE_SIZE: must be positive")
	}
	ttl, err := getDurationEnv("BLOG_REPLY_CACHE_TTL", defaultReplyCacheTTL)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getDurationEnv("BLOG_REPLY_TIMEOUT", defaultReplyTimeout)
	if err != nil {
		return Config{}, err
	}

	return Config{
		APIURL:        apiURL,
		SessionPath:   getEnv("BLOG_SESSION", filepath.Join(dir, "session.json")),
		UIStatePath:   getEnv("BLOG_UI_STATE", filepath.Join(dir, "ui_state.json")),
		LogFile:       getEnv("BLOG_LOG_FILE", filepath.Join(dir, "blogcomments.log")),
		LogLevel:      getEnv("BLOG_LOG_LEVEL", "info"),
		PageSize:      pageSize,
		ReplyCacheTTL: ttl,
		ReplyTimeout:  timeout,
	}, nil
}

func parseAPIURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid BLOG_API_URL: must be an absolute URL")
	}
	if parsed.Scheme != "https" && !isLocalHost(parsed.Hostname()) {
		return "", fmt.Errorf("invalid BLOG_API_URL: only https is allowed for remote hosts")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLocalHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "blogcomments"), nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

// UIState is the small piece of view state remembered between runs.
type UIState struct {
	Order string `json:"order,omitempty"`
}

// LoadUIState reads the state file. A missing file yields an empty state.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return UIState{}, nil
	}
	if err != nil {
		return UIState{}, fmt.Errorf("reading ui state: %w", err)
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state: %w", err)
	}
	return st, nil
}

// SaveUIState writes st to path, creating the directory if needed.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating ui state dir: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding ui state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}
