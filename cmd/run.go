package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/lectiz/internal/app"
	"github.com/abhisek/lectiz/internal/content"
	"github.com/abhisek/lectiz/internal/llm"
	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	profiles := newProfileService(st)
	if _, err := profiles.Resume(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not restore the last profile:", err)
	}

	return app.Run(app.Options{
		Profiles: profiles,
		Provider: newContentProvider(ctx, st.EventRepo()),
		Logger:   log.Printf,
	})
}

func newProfileService(st *store.Store) *profile.Service {
	repo := st.ProfileRepo()
	return profile.NewService(repo, repo)
}

// newContentProvider returns the LLM-backed provider, or the built-in
// reading when no LLM is configured. events may be nil to skip request
// logging.
func newContentProvider(ctx context.Context, events llm.EventRecorder) quiz.ContentProvider {
	cfg, err := llm.LoadConfig()
	return contentProviderFor(ctx, cfg, err, events, os.Stderr)
}

// contentProviderFor picks the content source for a loaded LLM config. The
// mock backend has nothing queued outside tests, so it selects the built-in
// reading directly. Fallbacks are reported on warn.
func contentProviderFor(ctx context.Context, cfg llm.Config, cfgErr error, events llm.EventRecorder, warn io.Writer) quiz.ContentProvider {
	err := cfgErr
	if err == nil {
		if cfg.Provider == llm.BackendMock {
			fmt.Fprintln(warn, "LLM provider \"mock\" selected; using the built-in reading.")
			return content.NewStatic()
		}
		var provider llm.Provider
		if provider, err = llm.NewProvider(ctx, cfg, events); err == nil {
			return content.New(provider, content.ConfigFromEnv())
		}
	}

	if errors.Is(err, llm.ErrNoProvider) {
		fmt.Fprintln(warn, "No LLM provider configured; using the built-in reading.")
	} else {
		fmt.Fprintln(warn, "LLM provider not configured:", err)
		fmt.Fprintln(warn, "Falling back to the built-in reading.")
	}
	return content.NewStatic()
}

// setupLogging routes the standard logger away from the terminal while the
// TUI runs. With LECTIZ_DEBUG set it goes to a debug log file instead.
func setupLogging() (func(), error) {
	if os.Getenv("LECTIZ_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	path, err := debugLogPath()
	if err != nil {
		return nil, fmt.Errorf("resolve debug log path: %w", err)
	}
	f, err := tea.LogToFile(path, "lectiz")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() { f.Close() }, nil
}

// debugLogPath returns $XDG_STATE_HOME/lectiz/debug.log, falling back to
// ~/.local/state/lectiz/debug.log.
func debugLogPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "state")
	}
	path := filepath.Join(dir, "lectiz", "debug.log")
	return path, store.EnsureDir(path)
}
