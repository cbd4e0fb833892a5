package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/h0rv/ghrs/internal/domain"
	"github.com/h0rv/ghrs/internal/pagination"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newQueryCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "query <query...>",
		Short: "Print one page of search results and exit",
		Example: `  ghrs query react stars:>50000
  ghrs query --sort stars --page 2 language:go cli`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			params := domain.SearchParams{
				Query:   strings.TrimSpace(strings.Join(args, " ")),
				Page:    page,
				PerPage: domain.PageSize,
				Sort:    s.sort,
				Order:   s.order,
			}

			result, err := s.client.SearchRepositories(cmd.Context(), params)
			if err != nil {
				s.logger.Warn("search failed", "query", params.Query, "err", err)
				return err
			}

			printResult(cmd.OutOrStdout(), params, result)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number to print")

	return cmd
}

// printResult writes a plain-text rendering of one result page.
func printResult(w io.Writer, params domain.SearchParams, result domain.SearchResult) {
	p := message.NewPrinter(language.English)

	header := p.Sprintf("Results for %q: %d", params.Query, result.TotalCount)
	if result.Capped() {
		header += p.Sprintf(" (showing first %d max)", domain.ResultsCap)
	}
	if result.Incomplete {
		header += " (results may be incomplete)"
	}
	fmt.Fprintln(w, header)

	totalPages := pagination.TotalPages(result.TotalCount, params.PerPage, domain.ResultsCap)
	fmt.Fprintf(w, "Page %d of %d, sorted by %s (%s)\n",
		params.Page, totalPages, params.Sort.Label(), params.Order.Label())

	if len(result.Items) == 0 {
		fmt.Fprintln(w, "\nNo repositories matched your search.")
	}

	offset := (params.Page - 1) * params.PerPage
	for i, repo := range result.Items {
		description := repo.Description
		if description == "" {
			description = "No description."
		}
		lang := repo.Language
		if lang == "" {
			lang = "Unknown"
		}
		updated := "unknown"
		if !repo.UpdatedAt.IsZero() {
			updated = humanize.Time(repo.UpdatedAt)
		}

		fmt.Fprintln(w)
		p.Fprintf(w, "%3d. %s  ★ %d  ⑂ %d  %s\n", offset+i+1, repo.FullName, repo.Stars, repo.Forks, lang)
		fmt.Fprintf(w, "     %s\n", description)
		fmt.Fprintf(w, "     %s · updated %s\n", repo.URL, updated)
	}

	if result.Rate.Known() {
		fmt.Fprintf(w, "\nRate limit: %d/%d remaining, resets %s\n",
			result.Rate.Remaining, result.Rate.Limit, humanize.Time(result.Rate.Reset))
	}
}
