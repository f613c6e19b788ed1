// Command aiscribe is a terminal recorder that transcribes microphone audio
// or uploaded files through the OpenAI API, summarizes the result, and keeps
// a local history with PDF, TXT and DOC export.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aiscribe/aiscribe/internal/app"
	"github.com/aiscribe/aiscribe/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "aiscribe:", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory can seed OPENAI_API_KEY on first run;
	// the key saved in settings takes precedence.
	_ = godotenv.Load()

	var (
		dbPath  = flag.String("db", store.DefaultDBPath(), "path to the sqlite database")
		file    = flag.String("file", "", "audio file to transcribe on startup")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	// The TUI owns stdout, so logs go to stderr only.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	st, err := store.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if cred, _ := st.Credential(); cred == "" {
		if env := os.Getenv("OPENAI_API_KEY"); env != "" {
			if err := st.SetCredential(env); err != nil {
				slog.Warn("ignoring OPENAI_API_KEY from environment", "error", err)
			}
		}
	}

	model := app.New(app.Deps{
		Store:      st,
		UploadPath: *file,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
