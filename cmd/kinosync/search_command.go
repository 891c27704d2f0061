package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kinosync/internal/library"
	"kinosync/internal/media"
	"kinosync/internal/resolve"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog",
	}
	searchCmd.AddCommand(newSearchFilmsCommand(ctx, "movie", media.KindMovie))
	searchCmd.AddCommand(newSearchFilmsCommand(ctx, "series", media.KindSeries))
	searchCmd.AddCommand(newSearchPersonCommand(ctx))
	return searchCmd
}

func newSearchFilmsCommand(ctx *commandContext, use string, kind media.Kind) *cobra.Command {
	var (
		year int
		id   int64
	)

	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: "Search " + use + " entries by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withResolver(func(svc *resolve.Service, _ *library.Store) error {
				hits, err := svc.SearchFilms(cmd.Context(), buildLookup(name, year, id), kind)
				if err != nil {
					return err
				}
				printSearchResults(cmd, hits)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Restrict results to a release year")
	cmd.Flags().Int64Var(&id, "id", 0, "Kinopoisk id (skips the name search)")
	return cmd
}

func newSearchPersonCommand(ctx *commandContext) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "person <name>",
		Short: "Search persons by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withResolver(func(svc *resolve.Service, _ *library.Store) error {
				hits, err := svc.SearchPersons(cmd.Context(), buildLookup(name, 0, id))
				if err != nil {
					return err
				}
				printSearchResults(cmd, hits)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Kinopoisk id (skips the name search)")
	return cmd
}

func printSearchResults(cmd *cobra.Command, hits []media.SearchResult) {
	if len(hits) == 0 {
		cmd.Println("No results.")
		return
	}
	rows := make([][]string, 0, len(hits))
	for _, hit := range hits {
		year := ""
		if hit.Year > 0 {
			year = strconv.Itoa(hit.Year)
		}
		rows = append(rows, []string{
			hit.ProviderIDs.Get(media.ProviderKinopoisk),
			hit.Name,
			year,
		})
	}
	cmd.Println(renderTable(
		[]string{"ID", "Name", "Year"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
	cmd.Println(fmt.Sprintf("%d result(s)", len(hits)))
}
