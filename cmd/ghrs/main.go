package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghrs/internal/search"
	"github.com/h0rv/ghrs/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// CLI flags
	configFlag  string
	sortFlag    string
	orderFlag   string
	logFileFlag string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ghrs [query...]",
		Short: "Search GitHub repositories from the terminal",
		Long: `ghrs is a terminal user interface for GitHub repository search.

Type a query, page through results and sort them by stars, forks or
last update. GitHub search qualifiers such as language:go or stars:>100
are passed through unchanged.

Authentication is optional:
  1. Environment variable: Set GITHUB_TOKEN (or GH_TOKEN)
  2. GitHub CLI: Run 'gh auth login'
Without a token searches are anonymous and more strictly rate limited.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define CLI flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: user config dir/ghrs/config.toml)")
	rootCmd.PersistentFlags().StringVar(&sortFlag, "sort", "", "Sort by: best-match, stars, forks, updated")
	rootCmd.PersistentFlags().StringVar(&orderFlag, "order", "", "Sort direction: desc, asc")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(newQueryCmd())

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Defaults apply before any query is committed, so no request is issued
	ctrl := search.New(ctx, s.client, s.logger)
	ctrl.ChangeSort(s.sort)
	ctrl.ChangeOrder(s.order)

	app := tui.NewAppModel(ctx, ctrl, s.client, s.logger, strings.Join(args, " "))

	// Run Bubble Tea program
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}
