package main

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghrs/internal/auth"
	"github.com/h0rv/ghrs/internal/config"
	"github.com/h0rv/ghrs/internal/domain"
	"github.com/h0rv/ghrs/internal/gh"
)

// session holds everything a command needs to talk to GitHub.
type session struct {
	client *gh.Client
	sort   domain.SortKey
	order  domain.Order
	logger *slog.Logger
	closer io.Closer
}

// newSession loads config, applies flag overrides, opens the log and
// resolves credentials.
func newSession() (*session, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	sortKey := cfg.SortKey()
	if sortFlag != "" {
		if sortKey, err = domain.ParseSortKey(sortFlag); err != nil {
			return nil, fmt.Errorf("--sort: %w", err)
		}
	}
	order := cfg.OrderValue()
	if orderFlag != "" {
		if order, err = domain.ParseOrder(orderFlag); err != nil {
			return nil, fmt.Errorf("--order: %w", err)
		}
	}

	logPath := cfg.LogFile
	if logFileFlag != "" {
		logPath = logFileFlag
	}
	logger, closer, err := openLogger(logPath)
	if err != nil {
		return nil, err
	}

	cred, credErr := auth.Resolve(auth.DefaultProviders(cfg.GhCliAuth, cfg.APIURL)...)
	if cred.Anonymous() {
		logger.Info("no GitHub token found, searching anonymously", "reason", credErr)
	} else {
		logger.Debug("using GitHub token", "source", cred.Source)
	}

	client, err := gh.New(gh.Options{BaseURL: cfg.APIURL, Token: cred.Token})
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &session{
		client: client,
		sort:   sortKey,
		order:  order,
		logger: logger,
		closer: closer,
	}, nil
}

// Close releases the log file.
func (s *session) Close() error {
	return s.closer.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openLogger returns a debug logger writing to path, or one that discards
// everything when path is empty. The terminal belongs to the UI, so logs
// never go to stdout or stderr.
func openLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}, nil
	}

	f, err := tea.LogToFile(path, "ghrs")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f, nil
}
