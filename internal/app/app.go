package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jakejg/outward-bound-chat-fe/internal/answering"
	"github.com/jakejg/outward-bound-chat-fe/internal/config"
	"github.com/jakejg/outward-bound-chat-fe/internal/session"
	"github.com/jakejg/outward-bound-chat-fe/internal/transcript"
	"github.com/jakejg/outward-bound-chat-fe/internal/tui"
)

// Run wires the application together and blocks until the TUI exits.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// The logger is not configured yet; use the default one.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	logFile, err := setupLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		slog.Error("Failed to open log file", "error", err)
		return 1
	}
	if logFile != nil {
		defer func() {
			if err := logFile.Close(); err != nil {
				slog.Error("Failed to close log file", "error", err)
			}
		}()
	}

	slog.Info("Starting chat client", "service_url", cfg.ServiceURL)

	svc := answering.NewHTTPService(cfg.ServiceURL)
	store := transcript.NewMemoryStore()

	// The program is created after the session, so the on-change callback
	// reaches it through this variable. Send is safe from any goroutine.
	var program *tea.Program
	sess := session.New(svc, store, session.WithOnChange(func() {
		if program != nil {
			program.Send(tui.SessionChangedMsg{})
		}
	}))

	m := tui.New(sess, cfg.UserLabel, cfg.AssistantLabel)
	program = tea.NewProgram(m, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		slog.Error("Chat client failed", "error", err)
		return 1
	}

	slog.Info("Chat client exited")
	return 0
}

// setupLogger installs a JSON slog handler at the configured level. The TUI
// owns stdout, so logs go to the configured file or nowhere at all. The
// returned file, if any, is the caller's to close.
func setupLogger(logLevel, logFile string) (*os.File, error) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var sink io.Writer = io.Discard
	var f *os.File
	if logFile != "" {
		var err error
		f, err = os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		sink = f
	}

	logger := slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return f, nil
}
