package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/blogcomments/app"
	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/infra/auth"
	"github.com/CrestNiraj12/blogcomments/infra/blogapi"
	"github.com/CrestNiraj12/blogcomments/infra/config"
	"github.com/CrestNiraj12/blogcomments/infra/editor"
	"github.com/CrestNiraj12/blogcomments/infra/logging"
	"github.com/CrestNiraj12/blogcomments/replies"
	"github.com/CrestNiraj12/blogcomments/tui"
	"github.com/CrestNiraj12/blogcomments/tui/thread"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

// parseCLIArgs returns the mode, the post to open and, for cliInvalid, the
// reason.
func parseCLIArgs(args []string) (cliMode, int64, string) {
	if len(args) == 0 {
		return cliInvalid, 0, "missing post ID"
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, 0, ""
	case "--help", "-h", "help":
		return cliHelp, 0, ""
	}

	if len(args) > 1 {
		return cliInvalid, 0, fmt.Sprintf("unexpected argument: %s", strings.Join(args[1:], " "))
	}
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || postID <= 0 {
		return cliInvalid, 0, fmt.Sprintf("invalid post ID: %s", args[0])
	}
	return cliRun, postID, ""
}

func usage() string {
	return "Usage: blogcomments <post-id> [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// initialOrder prefers the remembered sort order and falls back to the
// default when the state file is missing or stale.
func initialOrder(st config.UIState, log zerolog.Logger) domain.Order {
	if st.Order == "" {
		return domain.DefaultOrder
	}
	order, err := domain.ParseOrder(st.Order)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring saved sort order")
		return domain.DefaultOrder
	}
	return order
}

// resolveViewer returns the logged-in viewer, or nil to browse anonymously
// when the session is missing or unreadable.
func resolveViewer(sessions app.SessionService, log zerolog.Logger) *app.Viewer {
	viewer, err := sessions.CurrentViewer()
	if err != nil {
		log.Warn().Err(err).Msg("reading session failed, browsing anonymously")
		return nil
	}
	return viewer
}

func main() {
	mode, postID, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("blogcomments %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// 2. Build infrastructure.
	session := auth.NewFileSession(cfg.SessionPath, cfg.APIURL)
	httpClient := blogapi.NewClient(cfg.APIURL, session, log)

	viewer := resolveViewer(session, log)

	// 3. Build services (concrete types satisfy app.* interfaces).
	threadSvc := blogapi.NewThreadService(httpClient)
	commentSvc := blogapi.NewCommentService(httpClient)

	store, err := replies.NewStore(replies.DefaultSize, cfg.ReplyCacheTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reply cache: %v\n", err)
		os.Exit(1)
	}
	loader := replies.NewLoader(threadSvc, store,
		replies.WithTimeout(cfg.ReplyTimeout),
		replies.WithLogger(log),
	)

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Warn().Err(err).Msg("loading ui state failed")
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Thread: thread.Deps{
			PostID:   postID,
			Threads:  threadSvc,
			Comments: commentSvc,
			Viewer:   viewer,
			Loader:   loader,
			Bus:      replies.NewBus(),
			Editor:   editor.NewEnvEditor(),
			Log:      log,
			Limit:    cfg.PageSize,
			Order:    initialOrder(uiState, log),
		},
		StatePath: cfg.UIStatePath,
		Log:       log,
	})

	log.Info().Int64("post_id", postID).Str("api", cfg.APIURL).Msg("starting")

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Fprintf(os.Stderr, "blogcomments: %v\n", err)
		os.Exit(1)
	}
}
