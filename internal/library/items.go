package library

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"kinosync/internal/media"
)

// Library is one named library of items.
type Library struct {
	ID   int64
	Name string
}

// Item is one library entry. Virtual items are placeholders (missing
// episodes, upcoming releases) and are excluded from collection work.
type Item struct {
	ID        int64
	LibraryID int64
	Name      string
	Kind      media.Kind
	Year      int
	IsVirtual bool
}

// CreateLibrary inserts a library, returning the existing row when the
// name is already taken.
func (s *Store) CreateLibrary(ctx context.Context, name string) (Library, error) {
	ctx = ensureContext(ctx)
	res, err := s.execWithRetry(ctx,
		"INSERT INTO libraries (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name)
	if err != nil {
		return Library{}, fmt.Errorf("create library: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected > 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return Library{}, fmt.Errorf("create library: %w", err)
		}
		return Library{ID: id, Name: name}, nil
	}
	var lib Library
	err = s.db.QueryRowContext(ctx, "SELECT id, name FROM libraries WHERE name = ?", name).
		Scan(&lib.ID, &lib.Name)
	if err != nil {
		return Library{}, fmt.Errorf("load library: %w", err)
	}
	return lib, nil
}

// Libraries lists all libraries in creation order.
func (s *Store) Libraries(ctx context.Context) ([]Library, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM libraries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	defer rows.Close()

	var libraries []Library
	for rows.Next() {
		var lib Library
		if err := rows.Scan(&lib.ID, &lib.Name); err != nil {
			return nil, fmt.Errorf("scan library: %w", err)
		}
		libraries = append(libraries, lib)
	}
	return libraries, rows.Err()
}

// AddItem inserts an item with its provider bindings and returns its
// id. The item and its bindings commit together; a failed binding
// leaves no item row behind.
func (s *Store) AddItem(ctx context.Context, item Item, ids media.ProviderIDs) (int64, error) {
	ctx = ensureContext(ctx)
	var itemID int64
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO items (library_id, name, kind, year, is_virtual) VALUES (?, ?, ?, ?, ?)",
			item.LibraryID, item.Name, string(item.Kind), item.Year, item.IsVirtual)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if itemID, err = res.LastInsertId(); err != nil {
			_ = tx.Rollback()
			return err
		}
		for provider, value := range ids {
			if provider == "" || value == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO external_ids (item_id, provider, value) VALUES (?, ?, ?) ON CONFLICT(item_id, provider) DO NOTHING",
				itemID, provider, value); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("add item: %w", err)
	}
	return itemID, nil
}

// BindProviderID binds an external id to an item. The first binding per
// provider wins; rebinding is a no-op.
func (s *Store) BindProviderID(ctx context.Context, itemID int64, provider, value string) error {
	if provider == "" || value == "" {
		return nil
	}
	_, err := s.execWithRetry(ensureContext(ctx),
		"INSERT INTO external_ids (item_id, provider, value) VALUES (?, ?, ?) ON CONFLICT(item_id, provider) DO NOTHING",
		itemID, provider, value)
	if err != nil {
		return fmt.Errorf("bind provider id: %w", err)
	}
	return nil
}

// ProviderIDs loads the external id bindings of an item.
func (s *Store) ProviderIDs(ctx context.Context, itemID int64) (media.ProviderIDs, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT provider, value FROM external_ids WHERE item_id = ?", itemID)
	if err != nil {
		return nil, fmt.Errorf("load provider ids: %w", err)
	}
	defer rows.Close()

	ids := media.ProviderIDs{}
	for rows.Next() {
		var provider, value string
		if err := rows.Scan(&provider, &value); err != nil {
			return nil, fmt.Errorf("scan provider id: %w", err)
		}
		ids.Set(provider, value)
	}
	return ids, rows.Err()
}

// ItemsByProviderIDs finds non-virtual items of a kind in a library
// bound to any of the given provider ids.
func (s *Store) ItemsByProviderIDs(ctx context.Context, libraryID int64, kind media.Kind, ids media.ProviderIDs) ([]Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx = ensureContext(ctx)

	clauses := make([]string, 0, len(ids))
	args := []any{libraryID, string(kind)}
	for provider, value := range ids {
		clauses = append(clauses, "(e.provider = ? AND e.value = ?)")
		args = append(args, provider, value)
	}
	query := fmt.Sprintf(`SELECT DISTINCT i.id, i.library_id, i.name, i.kind, i.year, i.is_virtual
FROM items i
JOIN external_ids e ON e.item_id = i.id
WHERE i.library_id = ? AND i.kind = ? AND i.is_virtual = 0 AND (%s)
ORDER BY i.id`, strings.Join(clauses, " OR "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items by provider ids: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ItemsByLibrary lists all items of a library.
func (s *Store) ItemsByLibrary(ctx context.Context, libraryID int64) ([]Item, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, library_id, name, kind, year, is_virtual FROM items WHERE library_id = ? ORDER BY id`,
		libraryID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		var (
			item Item
			kind string
		)
		if err := rows.Scan(&item.ID, &item.LibraryID, &item.Name, &kind, &item.Year, &item.IsVirtual); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Kind = media.Kind(kind)
		items = append(items, item)
	}
	return items, rows.Err()
}
