package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwebster45206/scene-engine/internal/config"
	"github.com/jwebster45206/scene-engine/internal/game"
	"github.com/jwebster45206/scene-engine/internal/logger"
	"github.com/jwebster45206/scene-engine/internal/storage"
	"github.com/jwebster45206/scene-engine/pkg/adventure"
	"github.com/jwebster45206/scene-engine/pkg/scene"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg, os.Stderr)

	path := cfg.ScenePath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	var store storage.Storage
	if cfg.RedisURL != "" {
		rs := storage.NewRedisStorage(cfg.RedisURL, log)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rs.Ping(ctx); err != nil {
			cancel()
			log.Warn("Redis unavailable, continuing without session persistence", "error", err)
			_ = rs.Close()
		} else {
			cancel()
			store = rs
			defer func() {
				_ = rs.Close() // Ignore error in defer
			}()
		}
	}

	// SESSION_ID resumes a persisted session at its saved scene.
	if id := os.Getenv("SESSION_ID"); id != "" && store != nil {
		sessionID, err := uuid.Parse(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid SESSION_ID: %v\n", err)
			os.Exit(1)
		}
		sess, err := game.Resume(context.Background(), sessionID, store, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resume session: %v\n", err)
			os.Exit(1)
		}
		runUI(NewConsoleUI(store, log).WithSession(sess, nil))
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	if !info.IsDir() {
		// A bare scene file, no adventure metadata.
		sc, err := scene.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
			os.Exit(1)
		}
		runUI(NewConsoleUI(store, log).WithSession(game.New(sc, store, log), nil))
		return
	}

	adventures, err := adventure.Search(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to search adventures: %v\n", err)
		os.Exit(1)
	}
	if len(adventures) == 0 {
		fmt.Fprintf(os.Stderr, "No adventures found in %s\n", path)
		os.Exit(1)
	}

	ui := NewConsoleUI(store, log).WithAdventures(adventures)
	if len(adventures) == 1 {
		a := adventures[0]
		sc, err := a.Start()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start %s: %v\n", a, err)
			os.Exit(1)
		}
		ui = ui.WithSession(game.New(sc, store, log), a)
	}
	runUI(ui)
}

func runUI(ui ConsoleUI) {
	p := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
