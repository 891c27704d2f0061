package main

import (
	"github.com/spf13/cobra"

	"kinosync/internal/library"
	"kinosync/internal/resolve"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var (
		name string
		year int
		id   int64
	)
	cmd := &cobra.Command{
		Use:   "images",
		Short: "List the catalog images of a movie or series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withResolver(func(svc *resolve.Service, _ *library.Store) error {
				images, err := svc.Images(cmd.Context(), buildLookup(name, year, id))
				if err != nil {
					return err
				}
				if len(images) == 0 {
					cmd.Println("No images.")
					return nil
				}
				rows := make([][]string, 0, len(images))
				for _, image := range images {
					rows = append(rows, []string{string(image.Kind), image.Language, image.URL})
				}
				cmd.Println(renderTable(
					[]string{"Kind", "Lang", "URL"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	lookupFlags(cmd, &name, &year, &id)
	return cmd
}
