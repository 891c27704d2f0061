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

func newResolveCommand(ctx *commandContext) *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an item into full catalog metadata",
	}
	resolveCmd.AddCommand(newResolveMovieCommand(ctx))
	resolveCmd.AddCommand(newResolveSeriesCommand(ctx))
	resolveCmd.AddCommand(newResolveEpisodeCommand(ctx))
	resolveCmd.AddCommand(newResolvePersonCommand(ctx))
	return resolveCmd
}

func lookupFlags(cmd *cobra.Command, name *string, year *int, id *int64) {
	cmd.Flags().StringVar(name, "name", "", "Item name to search for")
	cmd.Flags().IntVar(year, "year", 0, "Release year hint")
	cmd.Flags().Int64Var(id, "id", 0, "Kinopoisk id (skips the name search)")
}

func jsonFlag(cmd *cobra.Command, asJSON *bool) {
	cmd.Flags().BoolVar(asJSON, "json", false, "Emit the result as JSON")
}

func buildLookup(name string, year int, id int64) resolve.Lookup {
	ids := media.ProviderIDs{}
	if id > 0 {
		ids.Set(media.ProviderKinopoisk, strconv.FormatInt(id, 10))
	}
	return resolve.Lookup{Name: strings.TrimSpace(name), Year: year, ProviderIDs: ids}
}

func newResolveMovieCommand(ctx *commandContext) *cobra.Command {
	var (
		name   string
		year   int
		id     int64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "movie",
		Short: "Resolve a movie",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withResolver(func(svc *resolve.Service, _ *library.Store) error {
				result, err := svc.Movie(cmd.Context(), buildLookup(name, year, id))
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					cmd.Println("No confident match.")
					return nil
				}
				if asJSON {
					return writeJSON(cmd, result.Item)
				}
				printMovie(cmd, result.Item)
				return nil
			})
		},
	}
	lookupFlags(cmd, &name, &year, &id)
	jsonFlag(cmd, &asJSON)
	return cmd
}

func newResolveSeriesCommand(ctx *commandContext) *cobra.Command {
	var (
		name   string
		year   int
		id     int64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Resolve a series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withResolver(func(svc *resolve.Service, _ *library.Store) error {
				result, err := svc.Series(cmd.Context(), buildLookup(name, year, id))
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					cmd.Println("No confident match.")
					return nil
				}
				if asJSON {
					return writeJSON(cmd, result.Item)
				}
				printSeries(cmd, result.Item)
				return nil
			})
		},
	}
	lookupFlags(cmd, &name, &year, &id)
	jsonFlag(cmd, &asJSON)
	return cmd
}

func newResolveEpisodeCommand(ctx *commandContext) *cobra.Command {
	var (
		seriesID int64
		season   int
		episode  int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "episode",
		Short: "Resolve one episode of a series",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := media.ProviderIDs{}
			if seriesID > 0 {
				ids.Set(media.ProviderKinopoisk, strconv.FormatInt(seriesID, 10))
			}
			lookup := resolve.EpisodeLookup{
				SeriesProviderIDs: ids,
				SeasonNumber:      season,
				EpisodeNumber:     episode,
			}
			return ctx.withResolver(func(svc *resolve.Service, _ *library.Store) error {
				result, err := svc.Episode(cmd.Context(), lookup)
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					cmd.Println("No confident match.")
					return nil
				}
				if asJSON {
					return writeJSON(cmd, result.Item)
				}
				printEpisode(cmd, result.Item)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&seriesID, "series-id", 0, "Kinopoisk id of the series")
	cmd.Flags().IntVar(&season, "season", 0, "Season number")
	cmd.Flags().IntVar(&episode, "episode", 0, "Episode number")
	_ = cmd.MarkFlagRequired("series-id")
	_ = cmd.MarkFlagRequired("season")
	_ = cmd.MarkFlagRequired("episode")
	jsonFlag(cmd, &asJSON)
	return cmd
}

func newResolvePersonCommand(ctx *commandContext) *cobra.Command {
	var (
		name   string
		year   int
		id     int64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Resolve a person",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withResolver(func(svc *resolve.Service, _ *library.Store) error {
				result, err := svc.Person(cmd.Context(), buildLookup(name, year, id))
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					cmd.Println("No confident match.")
					return nil
				}
				if asJSON {
					return writeJSON(cmd, result.Item)
				}
				printPerson(cmd, result.Item)
				return nil
			})
		},
	}
	lookupFlags(cmd, &name, &year, &id)
	jsonFlag(cmd, &asJSON)
	return cmd
}

func printMovie(cmd *cobra.Command, movie media.Movie) {
	printField(cmd, "Name", movie.Name)
	printField(cmd, "Original title", movie.OriginalTitle)
	printField(cmd, "Year", nonZero(movie.Year))
	printField(cmd, "Rating", ratingLine(movie.CommunityRating, movie.CriticRating))
	printField(cmd, "Runtime", nonZero(movie.RunTimeMinutes))
	printField(cmd, "Genres", strings.Join(movie.Genres, ", "))
	printField(cmd, "Countries", strings.Join(movie.ProductionLocations, ", "))
	printField(cmd, "Kinopoisk id", movie.ProviderIDs.Get(media.ProviderKinopoisk))
	printField(cmd, "IMDb id", movie.ProviderIDs.Get(media.ProviderIMDB))
	printField(cmd, "Overview", movie.Overview)
	printCredits(cmd, movie.People)
	printList(cmd, "Trailers", movie.TrailerURLs)
}

func printSeries(cmd *cobra.Command, series media.Series) {
	printField(cmd, "Name", series.Name)
	printField(cmd, "Original title", series.OriginalTitle)
	years := nonZero(series.Year)
	if series.EndYear > 0 {
		years = fmt.Sprintf("%s-%d", years, series.EndYear)
	}
	printField(cmd, "Years", years)
	printField(cmd, "Rating", ratingLine(series.CommunityRating, series.CriticRating))
	printField(cmd, "Genres", strings.Join(series.Genres, ", "))
	printField(cmd, "Countries", strings.Join(series.ProductionLocations, ", "))
	printField(cmd, "Kinopoisk id", series.ProviderIDs.Get(media.ProviderKinopoisk))
	printField(cmd, "IMDb id", series.ProviderIDs.Get(media.ProviderIMDB))
	printField(cmd, "Overview", series.Overview)
	printCredits(cmd, series.People)
	printList(cmd, "Trailers", series.TrailerURLs)
}

func printEpisode(cmd *cobra.Command, episode media.Episode) {
	printField(cmd, "Name", episode.Name)
	printField(cmd, "Original title", episode.OriginalTitle)
	printField(cmd, "Season", nonZero(episode.SeasonNumber))
	printField(cmd, "Episode", nonZero(episode.EpisodeNumber))
	if !episode.PremiereDate.IsZero() {
		printField(cmd, "Premiere", episode.PremiereDate.Format("2006-01-02"))
	}
	printField(cmd, "Overview", episode.Overview)
}

func printPerson(cmd *cobra.Command, person media.Person) {
	printField(cmd, "Name", person.Name)
	printField(cmd, "Original name", person.OriginalName)
	if !person.BirthDate.IsZero() {
		printField(cmd, "Born", person.BirthDate.Format("2006-01-02"))
	}
	if !person.DeathDate.IsZero() {
		printField(cmd, "Died", person.DeathDate.Format("2006-01-02"))
	}
	printField(cmd, "Birthplace", strings.Join(person.ProductionLocations, ", "))
	printField(cmd, "Kinopoisk id", person.ProviderIDs.Get(media.ProviderKinopoisk))
	printField(cmd, "Overview", person.Overview)
}

func printCredits(cmd *cobra.Command, credits []media.Credit) {
	if len(credits) == 0 {
		return
	}
	rows := make([][]string, 0, len(credits))
	for _, credit := range credits {
		rows = append(rows, []string{credit.Name, string(credit.Role), credit.Character})
	}
	cmd.Println("People:")
	cmd.Println(renderTable(
		[]string{"Name", "Role", "Character"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}

func printList(cmd *cobra.Command, label string, values []string) {
	if len(values) == 0 {
		return
	}
	cmd.Println(label + ":")
	for _, value := range values {
		cmd.Println("  " + value)
	}
}

func printField(cmd *cobra.Command, label, value string) {
	if value == "" {
		return
	}
	cmd.Println(fmt.Sprintf("%-15s %s", label+":", value))
}

func nonZero(value int) string {
	if value == 0 {
		return ""
	}
	return strconv.Itoa(value)
}

func ratingLine(community, critic float64) string {
	parts := make([]string, 0, 2)
	if community > 0 {
		parts = append(parts, fmt.Sprintf("%.1f", community))
	}
	if critic > 0 {
		parts = append(parts, fmt.Sprintf("critics %.0f", critic))
	}
	return strings.Join(parts, ", ")
}
