// Package main runs the terminal showcase client.
//
// Usage:
//
//	go run ./cmd/showcase
//	go run ./cmd/showcase --server http://localhost:8080 --url '/?tags=code'
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/copycount"
	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/logger"
	"github.com/aishort/showcase-server/internal/showcase"
	"github.com/aishort/showcase-server/internal/tui"
	"github.com/aishort/showcase-server/internal/urlstate"
)

func main() {
	os.Exit(run())
}

func run() int {
	catalogPath := flag.String("catalog", "", "Catalog file (default: embedded)")
	server := flag.String("server", os.Getenv("COPY_COUNT_URL"), "Showcase server for copy counts (optional)")
	startURL := flag.String("url", "/", "Initial location, e.g. /?tags=code&operator=AND")
	locale := flag.String("locale", string(domain.DefaultLocale), "UI locale")
	debounce := flag.Duration("debounce", urlstate.DefaultSearchDebounce, "Search debounce")
	logFile := flag.String("log-file", "", "Write debug logs to this file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var w io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}
	log := logger.New(logger.Config{Writer: w, Format: logger.FormatJSON, Level: logger.ParseLevel("debug")})

	source, err := catalog.NewSource(*catalogPath, log.WithComponent("catalog"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
		return 1
	}

	// Without a server the counters start at zero and only count local copies.
	var fetcher copycount.Fetcher
	opts := []copycount.Option{copycount.WithLogger(log.WithComponent("copycount")), copycount.WithFetchTimeout(5 * time.Second)}
	if *server != "" {
		client, err := copycount.NewClient(*server)
		if err != nil {
			fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
			return 1
		}
		fetcher = client
		opts = append(opts, copycount.WithRecorder(client))
	}

	history := urlstate.NewMemoryHistory(*startURL)
	focus := &tui.FocusState{}
	page := showcase.NewPage(source, history, copycount.New(fetcher, opts...), showcase.Config{
		Locale:         domain.LocaleOrDefault(*locale, domain.DefaultLocale),
		SearchDebounce: *debounce,
		Capture:        focus.Capture,
		Logger:         log.WithComponent("page"),
	})
	defer page.Close()

	model := tui.New(tui.Options{Context: ctx, Page: page, History: history, Focus: focus})
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
		return 1
	}
	return 0
}
