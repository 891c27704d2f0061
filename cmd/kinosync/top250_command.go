package main

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"kinosync/internal/library"
	"kinosync/internal/media"
	"kinosync/internal/top250"
)

func newTop250Command(ctx *commandContext) *cobra.Command {
	top250Cmd := &cobra.Command{
		Use:   "top250",
		Short: "Synchronize Top 250 collections",
	}
	top250Cmd.AddCommand(newTop250RunCommand(ctx, "movies", media.KindMovie))
	top250Cmd.AddCommand(newTop250RunCommand(ctx, "series", media.KindSeries))
	return top250Cmd
}

func newTop250RunCommand(ctx *commandContext, use string, kind media.Kind) *cobra.Command {
	var collectionName string

	cmd := &cobra.Command{
		Use:   use,
		Short: "Synchronize the Top 250 " + use + " collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			name := collectionName
			if name == "" {
				if kind == media.KindSeries {
					name = cfg.Collections.Top250Series
				} else {
					name = cfg.Collections.Top250Movies
				}
			}

			// One sync at a time across processes. A held lock means
			// another run is active; bail out instead of queuing.
			lock := flock.New(cfg.Paths.LockFile)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire sync lock: %w", err)
			}
			if !locked {
				cmd.Println("Another sync is already running.")
				return nil
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *library.Store) error {
				client, err := ctx.newClient(store, logger)
				if err != nil {
					return err
				}
				progress := func(percent float64) {
					cmd.Printf("\rProgress: %3.0f%%", percent)
				}
				sync := top250.New(client, store, logger, progress)
				report, err := sync.Run(cmd.Context(), kind, name)
				cmd.Println()
				if err != nil {
					return err
				}
				cmd.Printf("Run %s: %d entries, %d items added, %d collections created, %d libraries failed\n",
					report.RunID, report.Films, report.ItemsAdded, report.CollectionsCreated, report.FailedLibraries)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&collectionName, "collection", "", "Override the collection name")
	return cmd
}
