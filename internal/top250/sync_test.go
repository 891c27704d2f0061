package top250

import (
	"context"
	"errors"
	"testing"

	"kinosync/internal/library"
	"kinosync/internal/logging"
	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

type fakeSource struct {
	films   []kinopoisk.Film
	started chan struct{}
	release chan struct{}
}

func (f *fakeSource) Top250Films(ctx context.Context) ([]kinopoisk.Film, error) {
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.films, nil
}

type fakeStore struct {
	libraries   []library.Library
	items       map[int64]map[string]library.Item // libraryID -> provider:value -> item
	collections map[string][]library.Collection
	members     map[int64]map[int64]bool
	nextID      int64
	failLibrary int64
	folderCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:       make(map[int64]map[string]library.Item),
		collections: make(map[string][]library.Collection),
		members:     make(map[int64]map[int64]bool),
		nextID:      100,
	}
}

func (s *fakeStore) addLibrary(id int64, name string) {
	s.libraries = append(s.libraries, library.Library{ID: id, Name: name})
	s.items[id] = make(map[string]library.Item)
}

func (s *fakeStore) addItem(libraryID, itemID int64, kind media.Kind, provider, value string) {
	s.items[libraryID][provider+":"+value] = library.Item{
		ID: itemID, LibraryID: libraryID, Kind: kind,
	}
}

func (s *fakeStore) Libraries(context.Context) ([]library.Library, error) {
	return s.libraries, nil
}

func (s *fakeStore) ItemsByProviderIDs(_ context.Context, libraryID int64, kind media.Kind, ids media.ProviderIDs) ([]library.Item, error) {
	if libraryID == s.failLibrary {
		return nil, errors.New("library unavailable")
	}
	var found []library.Item
	seen := make(map[int64]bool)
	for provider, value := range ids {
		item, ok := s.items[libraryID][provider+":"+value]
		if !ok || item.Kind != kind || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		found = append(found, item)
	}
	return found, nil
}

func (s *fakeStore) CollectionsByName(_ context.Context, name string) ([]library.Collection, error) {
	return s.collections[name], nil
}

func (s *fakeStore) CreateCollection(_ context.Context, name string) (library.Collection, error) {
	s.nextID++
	collection := library.Collection{ID: s.nextID, Name: name}
	s.collections[name] = append(s.collections[name], collection)
	s.members[collection.ID] = make(map[int64]bool)
	return collection, nil
}

func (s *fakeStore) AddToCollection(_ context.Context, collectionID, itemID int64) (bool, error) {
	if s.members[collectionID] == nil {
		s.members[collectionID] = make(map[int64]bool)
	}
	if s.members[collectionID][itemID] {
		return false, nil
	}
	s.members[collectionID][itemID] = true
	return true, nil
}

func (s *fakeStore) EnsureCollectionsFolder(context.Context) error {
	s.folderCalls++
	return nil
}

func top250Films() []kinopoisk.Film {
	return []kinopoisk.Film{
		{KinopoiskID: 435, ImdbID: "tt0120689", Type: "FILM"},
		{KinopoiskID: 326, Type: "FILM"},
		{KinopoiskID: 77044, Type: "TV_SERIES"},
	}
}

func TestRunCreatesCollectionAndAddsMatches(t *testing.T) {
	store := newFakeStore()
	store.addLibrary(1, "Movies")
	store.addItem(1, 10, media.KindMovie, media.ProviderKinopoisk, "435")
	store.addItem(1, 11, media.KindMovie, media.ProviderIMDB, "tt0120689")
	store.addItem(1, 12, media.KindMovie, media.ProviderKinopoisk, "326")

	sync := New(&fakeSource{films: top250Films()}, store, logging.NewNop(), nil)
	report, err := sync.Run(context.Background(), media.KindMovie, "Топ 250")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.RunID == "" {
		t.Fatal("expected a run id")
	}
	if report.Films != 2 {
		t.Fatalf("expected 2 movie entries, got %d", report.Films)
	}
	if report.CollectionsCreated != 1 || store.folderCalls != 1 {
		t.Fatalf("expected one created collection under the folder, got %#v", report)
	}
	if report.ItemsAdded != 3 {
		t.Fatalf("expected 3 items added, got %d", report.ItemsAdded)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addLibrary(1, "Movies")
	store.addItem(1, 10, media.KindMovie, media.ProviderKinopoisk, "435")

	sync := New(&fakeSource{films: top250Films()}, store, logging.NewNop(), nil)
	if _, err := sync.Run(context.Background(), media.KindMovie, "Топ 250"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	report, err := sync.Run(context.Background(), media.KindMovie, "Топ 250")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if report.ItemsAdded != 0 {
		t.Fatalf("expected no new members on rerun, got %d", report.ItemsAdded)
	}
	if report.CollectionsCreated != 0 {
		t.Fatalf("expected the existing collection reused, got %d created", report.CollectionsCreated)
	}
	if len(store.collections["Топ 250"]) != 1 {
		t.Fatalf("expected one collection, got %#v", store.collections)
	}
}

func TestRunIsolatesLibraryFailures(t *testing.T) {
	store := newFakeStore()
	store.addLibrary(1, "Broken")
	store.addLibrary(2, "Movies")
	store.addItem(2, 20, media.KindMovie, media.ProviderKinopoisk, "435")
	store.failLibrary = 1

	sync := New(&fakeSource{films: top250Films()}, store, logging.NewNop(), nil)
	report, err := sync.Run(context.Background(), media.KindMovie, "Топ 250")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.FailedLibraries != 1 {
		t.Fatalf("expected one failed library, got %d", report.FailedLibraries)
	}
	if report.ItemsAdded != 1 {
		t.Fatalf("expected the healthy library synchronized, got %d added", report.ItemsAdded)
	}
}

func TestRunRejectsConcurrentTrigger(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	store := newFakeStore()
	store.addLibrary(1, "Movies")

	sync := New(&fakeSource{films: top250Films(), started: started, release: release}, store, logging.NewNop(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := sync.Run(context.Background(), media.KindMovie, "Топ 250")
		done <- err
	}()

	// The first run is parked inside the source fetch; a second trigger
	// must bounce instead of queuing.
	<-started
	if _, err := sync.Run(context.Background(), media.KindMovie, "Топ 250"); !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}
}

func TestRunSeriesListMayBeEmpty(t *testing.T) {
	store := newFakeStore()
	store.addLibrary(1, "Shows")

	films := []kinopoisk.Film{{KinopoiskID: 435, Type: "FILM"}}
	sync := New(&fakeSource{films: films}, store, logging.NewNop(), nil)
	report, err := sync.Run(context.Background(), media.KindSeries, "Топ 250 (Сериалы)")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Films != 0 || report.ItemsAdded != 0 || report.CollectionsCreated != 0 {
		t.Fatalf("expected an empty no-op run, got %#v", report)
	}
}

func TestRunReportsProgress(t *testing.T) {
	store := newFakeStore()
	store.addLibrary(1, "A")
	store.addLibrary(2, "B")
	store.addItem(1, 10, media.KindMovie, media.ProviderKinopoisk, "435")

	var percents []float64
	progress := func(percent float64) { percents = append(percents, percent) }

	sync := New(&fakeSource{films: top250Films()}, store, logging.NewNop(), progress)
	if _, err := sync.Run(context.Background(), media.KindMovie, "Топ 250"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(percents) < 3 {
		t.Fatalf("expected progress reports, got %#v", percents)
	}
	if percents[0] != 10 {
		t.Fatalf("expected 10%% after the fetch, got %v", percents[0])
	}
	if last := percents[len(percents)-1]; last != 100 {
		t.Fatalf("expected a terminal 100%%, got %v", last)
	}
}
