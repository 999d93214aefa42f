package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/menurag"
)

// Compile-time interface verification.
var _ menurag.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore implements menurag.ArtifactStore using SQLite. A build and
// its metadata are written and made current in a single transaction.
type ArtifactStore struct {
	db *DB
}

// NewArtifactStore creates a new ArtifactStore.
func NewArtifactStore(db *DB) *ArtifactStore {
	return &ArtifactStore{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// Save stores a and makes it the current build. Superseded builds are
// removed in the same transaction.
func (s *ArtifactStore) Save(ctx context.Context, a *menurag.Artifacts) error {
	if err := a.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds WHERE id = ?`, a.BuildID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return menurag.Errorf(menurag.ECONFLICT, "build %q already exists", a.BuildID)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO builds (id, index_blob, index_hash, item_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.BuildID, a.Index, hashContent(a.Index), len(a.Metadata), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metadata (build_id, position, restaurant_name, item_name, item_json)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range a.Metadata {
		m := &a.Metadata[i]
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, a.BuildID, i, m.RestaurantName, m.ItemName, string(data)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO current_build (id, build_id) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET build_id = excluded.build_id
	`, a.BuildID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM builds WHERE id <> ?`, a.BuildID); err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the current build.
func (s *ArtifactStore) Load(ctx context.Context) (*menurag.Artifacts, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var a menurag.Artifacts
	var hash string
	var count int
	err = tx.QueryRowContext(ctx, `
		SELECT b.id, b.index_blob, b.index_hash, b.item_count
		FROM current_build c
		JOIN builds b ON b.id = c.build_id
		WHERE c.id = 1
	`).Scan(&a.BuildID, &a.Index, &hash, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, menurag.Errorf(menurag.ENOTFOUND, "no index build found")
	}
	if err != nil {
		return nil, err
	}
	if hashContent(a.Index) != hash {
		return nil, menurag.Errorf(menurag.EMALFORMED, "index checksum mismatch in build %q", a.BuildID)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT position, item_json FROM metadata
		WHERE build_id = ?
		ORDER BY position
	`, a.BuildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	a.Metadata = make([]menurag.Metadata, 0, count)
	for rows.Next() {
		var position int
		var data string
		if err := rows.Scan(&position, &data); err != nil {
			return nil, err
		}
		if position != len(a.Metadata) {
			return nil, menurag.Errorf(menurag.EMALFORMED, "metadata position %d missing in build %q", len(a.Metadata), a.BuildID)
		}
		var m menurag.Metadata
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, menurag.Errorf(menurag.EMALFORMED, "decoding metadata %d: %v", position, err)
		}
		a.Metadata = append(a.Metadata, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(a.Metadata) != count {
		return nil, menurag.Errorf(menurag.EMALFORMED, "build %q lists %d items but has %d", a.BuildID, count, len(a.Metadata))
	}

	return &a, nil
}
