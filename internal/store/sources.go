package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressline/internal/release"
)

// InsertSource persists a new source release owned by an artist. The ID is
// assigned when empty; title and artist must be non-empty.
func (s *Store) InsertSource(ctx context.Context, src *release.Source) error {
	if src == nil {
		return errors.New("source is nil")
	}
	if strings.TrimSpace(src.Title) == "" {
		return errors.New("source title is required")
	}
	if strings.TrimSpace(src.Artist) == "" {
		return errors.New("source artist is required")
	}
	if strings.TrimSpace(src.OwnerID) == "" {
		return errors.New("source owner is required")
	}
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	if src.Type == "" {
		src.Type = release.TypeSingle
	}

	now := time.Now().UTC()
	src.CreatedAt = now
	src.UpdatedAt = now
	timestamp := now.Format(time.RFC3339Nano)

	genres, err := marshalStrings(src.Genres)
	if err != nil {
		return err
	}

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO source_releases (
            id, owner_id, title, artist, release_type, genres_json, release_date,
            description, audio_ref, cover_ref, upc, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		src.ID,
		src.OwnerID,
		src.Title,
		src.Artist,
		string(src.Type),
		genres,
		nullableString(src.ReleaseDate),
		nullableString(src.Description),
		nullableString(src.AudioRef),
		nullableString(src.CoverRef),
		nullableString(src.UPC),
		timestamp,
		timestamp,
	); err != nil {
		return fmt.Errorf("insert source release: %w", err)
	}
	return nil
}

// GetSource fetches a source release scoped to its owner. Returns nil when
// no matching record exists.
func (s *Store) GetSource(ctx context.Context, ownerID, id string) (*release.Source, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+sourceColumns+` FROM source_releases WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	src, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get source release: %w", err)
	}
	return src, nil
}

// ListSources returns an owner's source releases ordered by creation time.
func (s *Store) ListSources(ctx context.Context, ownerID string) ([]*release.Source, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+sourceColumns+` FROM source_releases WHERE owner_id = ? ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list source releases: %w", err)
	}
	defer rows.Close()

	var sources []*release.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// AttachAssets records asset references on a source release. Empty values
// leave the existing reference untouched. Returns false when the release
// does not exist for the owner.
func (s *Store) AttachAssets(ctx context.Context, ownerID, id, audioRef, coverRef string) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE source_releases
         SET audio_ref = COALESCE(?, audio_ref),
             cover_ref = COALESCE(?, cover_ref),
             updated_at = ?
         WHERE owner_id = ? AND id = ?`,
		nullableString(audioRef),
		nullableString(coverRef),
		time.Now().UTC().Format(time.RFC3339Nano),
		ownerID,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("attach assets: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
