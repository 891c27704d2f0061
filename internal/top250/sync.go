package top250

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"kinosync/internal/library"
	"kinosync/internal/logging"
	"kinosync/internal/mapping"
	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

// ErrSyncInProgress reports that a run is already active. Triggers that
// land while a run holds the slot are dropped, not queued.
var ErrSyncInProgress = errors.New("top250: sync already in progress")

// Source fetches the ranked film list.
type Source interface {
	Top250Films(ctx context.Context) ([]kinopoisk.Film, error)
}

// Store is the slice of library persistence the synchronizer needs.
type Store interface {
	Libraries(ctx context.Context) ([]library.Library, error)
	ItemsByProviderIDs(ctx context.Context, libraryID int64, kind media.Kind, ids media.ProviderIDs) ([]library.Item, error)
	CollectionsByName(ctx context.Context, name string) ([]library.Collection, error)
	CreateCollection(ctx context.Context, name string) (library.Collection, error)
	AddToCollection(ctx context.Context, collectionID, itemID int64) (bool, error)
	EnsureCollectionsFolder(ctx context.Context) error
}

// Progress receives completion percentages as a run advances.
type Progress func(percent float64)

// Report summarizes one completed run.
type Report struct {
	RunID              string
	Films              int
	Libraries          int
	FailedLibraries    int
	ItemsAdded         int
	CollectionsCreated int
}

// Synchronizer reconciles the Top 250 list into collections. Each
// instance admits one run at a time.
type Synchronizer struct {
	source   Source
	store    Store
	logger   *slog.Logger
	progress Progress
	running  atomic.Bool
}

// New creates a Synchronizer. progress may be nil.
func New(source Source, store Store, logger *slog.Logger, progress Progress) *Synchronizer {
	if progress == nil {
		progress = func(float64) {}
	}
	return &Synchronizer{
		source:   source,
		store:    store,
		logger:   logging.WithComponent(logger, "top250"),
		progress: progress,
	}
}

// Run synchronizes the Top 250 entries of the given kind into the
// collection named collectionName across every library. A library that
// fails is logged and skipped; the run continues with the rest.
func (s *Synchronizer) Run(ctx context.Context, kind media.Kind, collectionName string) (Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Report{}, ErrSyncInProgress
	}
	defer s.running.Store(false)

	report := Report{RunID: uuid.NewString()}
	logger := s.logger.With(logging.String("run_id", report.RunID), logging.String("kind", string(kind)))
	logger.Info("starting top 250 sync", logging.String("collection", collectionName))

	films, err := s.source.Top250Films(ctx)
	if err != nil {
		return report, err
	}
	wanted := filterKind(films, kind)
	report.Films = len(wanted)
	s.progress(10)
	if len(wanted) == 0 {
		logger.Info("no top 250 entries for kind, nothing to do")
		s.progress(100)
		return report, nil
	}

	libraries, err := s.store.Libraries(ctx)
	if err != nil {
		return report, err
	}
	report.Libraries = len(libraries)
	if len(libraries) == 0 {
		logger.Info("no libraries to synchronize")
		s.progress(100)
		return report, nil
	}

	step := 90.0 / float64(len(libraries))
	percent := 10.0
	for _, lib := range libraries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		added, created, err := s.syncLibrary(ctx, lib, kind, collectionName, wanted)
		if err != nil {
			report.FailedLibraries++
			logger.Error("library sync failed",
				logging.String("library", lib.Name), logging.Error(err))
		} else {
			report.ItemsAdded += added
			if created {
				report.CollectionsCreated++
			}
		}
		percent += step
		s.progress(percent)
	}

	logger.Info("top 250 sync finished",
		logging.Int("films", report.Films),
		logging.Int("items_added", report.ItemsAdded),
		logging.Int("failed_libraries", report.FailedLibraries))
	s.progress(100)
	return report, nil
}

// syncLibrary reconciles one library: locate the local items matching
// the ranked list, then add them to the named collection. Exactly one
// existing collection with the name is reused; otherwise a fresh one is
// created under the collections folder.
func (s *Synchronizer) syncLibrary(ctx context.Context, lib library.Library, kind media.Kind, collectionName string, films []kinopoisk.Film) (int, bool, error) {
	var itemIDs []int64
	seen := make(map[int64]struct{})
	for _, film := range films {
		items, err := s.store.ItemsByProviderIDs(ctx, lib.ID, kind, mapping.FilmProviderIDs(film))
		if err != nil {
			return 0, false, err
		}
		for _, item := range items {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			itemIDs = append(itemIDs, item.ID)
		}
	}
	if len(itemIDs) == 0 {
		s.logger.Info("library has no matching items", logging.String("library", lib.Name))
		return 0, false, nil
	}

	collections, err := s.store.CollectionsByName(ctx, collectionName)
	if err != nil {
		return 0, false, err
	}
	var (
		collection library.Collection
		created    bool
	)
	if len(collections) == 1 {
		collection = collections[0]
	} else {
		if len(collections) > 1 {
			s.logger.Warn("collection name is ambiguous, creating a fresh one",
				logging.String("collection", collectionName), logging.Int("count", len(collections)))
		}
		if err := s.store.EnsureCollectionsFolder(ctx); err != nil {
			return 0, false, err
		}
		collection, err = s.store.CreateCollection(ctx, collectionName)
		if err != nil {
			return 0, false, err
		}
		created = true
	}

	added := 0
	for _, itemID := range itemIDs {
		wasNew, err := s.store.AddToCollection(ctx, collection.ID, itemID)
		if err != nil {
			return added, created, err
		}
		if wasNew {
			added++
		}
	}
	s.logger.Info("library synchronized",
		logging.String("library", lib.Name),
		logging.Int("matched", len(itemIDs)),
		logging.Int("added", added))
	return added, created, nil
}

func filterKind(films []kinopoisk.Film, kind media.Kind) []kinopoisk.Film {
	wanted := make([]kinopoisk.Film, 0, len(films))
	for _, film := range films {
		if (kind == media.KindSeries) != film.IsSeries() {
			continue
		}
		wanted = append(wanted, film)
	}
	return wanted
}

