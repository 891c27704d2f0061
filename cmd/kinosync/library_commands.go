package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kinosync/internal/library"
	"kinosync/internal/media"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage local libraries and their items",
	}
	libraryCmd.AddCommand(newLibraryCreateCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryAddItemCommand(ctx))
	libraryCmd.AddCommand(newLibraryItemsCommand(ctx))
	return libraryCmd
}

func (c *commandContext) withStore(fn func(*library.Store) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newLibraryCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				lib, err := store.CreateLibrary(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				cmd.Printf("Library %q (id %d)\n", lib.Name, lib.ID)
				return nil
			})
		},
	}
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List libraries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				libraries, err := store.Libraries(cmd.Context())
				if err != nil {
					return err
				}
				if len(libraries) == 0 {
					cmd.Println("No libraries.")
					return nil
				}
				rows := make([][]string, 0, len(libraries))
				for _, lib := range libraries {
					rows = append(rows, []string{strconv.FormatInt(lib.ID, 10), lib.Name})
				}
				cmd.Println(renderTable(
					[]string{"ID", "Name"},
					rows,
					[]columnAlignment{alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newLibraryAddItemCommand(ctx *commandContext) *cobra.Command {
	var (
		kind        string
		year        int
		kinopoiskID int64
		imdbID      string
		tmdbID      string
		virtual     bool
	)
	cmd := &cobra.Command{
		Use:   "add-item <library> <name>",
		Short: "Add an item to a library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemKind := media.Kind(strings.ToLower(strings.TrimSpace(kind)))
			switch itemKind {
			case media.KindMovie, media.KindSeries, media.KindEpisode:
			default:
				return fmt.Errorf("unsupported kind %q", kind)
			}

			ids := media.ProviderIDs{}
			if kinopoiskID > 0 {
				ids.Set(media.ProviderKinopoisk, strconv.FormatInt(kinopoiskID, 10))
			}
			ids.Set(media.ProviderIMDB, strings.TrimSpace(imdbID))
			ids.Set(media.ProviderTMDB, strings.TrimSpace(tmdbID))

			return ctx.withStore(func(store *library.Store) error {
				lib, err := findLibrary(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				itemID, err := store.AddItem(cmd.Context(), library.Item{
					LibraryID: lib.ID,
					Name:      strings.TrimSpace(args[1]),
					Kind:      itemKind,
					Year:      year,
					IsVirtual: virtual,
				}, ids)
				if err != nil {
					return err
				}
				cmd.Printf("Item %d added to %q\n", itemID, lib.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "movie", "Item kind (movie, series, episode)")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	cmd.Flags().Int64Var(&kinopoiskID, "kinopoisk-id", 0, "Kinopoisk id binding")
	cmd.Flags().StringVar(&imdbID, "imdb-id", "", "IMDb id binding")
	cmd.Flags().StringVar(&tmdbID, "tmdb-id", "", "TMDB id binding")
	cmd.Flags().BoolVar(&virtual, "virtual", false, "Mark the item as a placeholder")
	return cmd
}

func newLibraryItemsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "items <library>",
		Short: "List the items of a library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				lib, err := findLibrary(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				items, err := store.ItemsByLibrary(cmd.Context(), lib.ID)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					cmd.Println("No items.")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					virtual := ""
					if item.IsVirtual {
						virtual = "yes"
					}
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.Name,
						string(item.Kind),
						nonZero(item.Year),
						virtual,
					})
				}
				cmd.Println(renderTable(
					[]string{"ID", "Name", "Kind", "Year", "Virtual"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

// findLibrary accepts a library id or name.
func findLibrary(ctx context.Context, store *library.Store, ref string) (library.Library, error) {
	ref = strings.TrimSpace(ref)
	libraries, err := store.Libraries(ctx)
	if err != nil {
		return library.Library{}, err
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, lib := range libraries {
			if lib.ID == id {
				return lib, nil
			}
		}
	}
	for _, lib := range libraries {
		if lib.Name == ref {
			return lib, nil
		}
	}
	return library.Library{}, fmt.Errorf("library %q not found", ref)
}
