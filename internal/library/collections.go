package library

import (
	"context"
	"fmt"
)

// Collection is a named grouping of items.
type Collection struct {
	ID   int64
	Name string
}

// CollectionsByName returns every collection carrying exactly the given
// name. Names are not unique, so callers decide how to treat zero or
// several matches.
func (s *Store) CollectionsByName(ctx context.Context, name string) ([]Collection, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM collections WHERE name = ? ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	var collections []Collection
	for rows.Next() {
		var collection Collection
		if err := rows.Scan(&collection.ID, &collection.Name); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, collection)
	}
	return collections, rows.Err()
}

// CreateCollection inserts a new collection with the given name.
func (s *Store) CreateCollection(ctx context.Context, name string) (Collection, error) {
	res, err := s.execWithRetry(ensureContext(ctx),
		"INSERT INTO collections (name) VALUES (?)", name)
	if err != nil {
		return Collection{}, fmt.Errorf("create collection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Collection{}, fmt.Errorf("create collection: %w", err)
	}
	return Collection{ID: id, Name: name}, nil
}

// AddToCollection adds an item to a collection and reports whether the
// membership was newly created. Re-adding an existing member is a
// no-op.
func (s *Store) AddToCollection(ctx context.Context, collectionID, itemID int64) (bool, error) {
	res, err := s.execWithRetry(ensureContext(ctx),
		"INSERT INTO collection_members (collection_id, item_id) VALUES (?, ?) ON CONFLICT(collection_id, item_id) DO NOTHING",
		collectionID, itemID)
	if err != nil {
		return false, fmt.Errorf("add collection member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add collection member: %w", err)
	}
	return affected > 0, nil
}

// CollectionMembers lists the item ids of a collection.
func (s *Store) CollectionMembers(ctx context.Context, collectionID int64) ([]int64, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id FROM collection_members WHERE collection_id = ? ORDER BY item_id", collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection members: %w", err)
	}
	defer rows.Close()

	var members []int64
	for rows.Next() {
		var itemID int64
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("scan collection member: %w", err)
		}
		members = append(members, itemID)
	}
	return members, rows.Err()
}

// EnsureCollectionsFolder marks the collections folder as enabled so
// newly created collections have a place to live. Idempotent.
func (s *Store) EnsureCollectionsFolder(ctx context.Context) error {
	_, err := s.execWithRetry(ensureContext(ctx),
		"INSERT INTO collections_folder (id, enabled) VALUES (1, 1) ON CONFLICT(id) DO UPDATE SET enabled = 1")
	if err != nil {
		return fmt.Errorf("ensure collections folder: %w", err)
	}
	return nil
}
