package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pressline/internal/release"
)

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}

func marshalStrings(values []string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

func unmarshalStrings(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw.String), &values); err != nil {
		return nil, fmt.Errorf("unmarshal string list: %w", err)
	}
	return values, nil
}

const sourceColumns = "id, owner_id, title, artist, release_type, genres_json, release_date, description, audio_ref, cover_ref, upc, created_at, updated_at"

func scanSource(scanner interface{ Scan(dest ...any) error }) (*release.Source, error) {
	var (
		id          string
		ownerID     string
		title       string
		artist      string
		releaseType string
		genres      sql.NullString
		releaseDate sql.NullString
		description sql.NullString
		audioRef    sql.NullString
		coverRef    sql.NullString
		upc         sql.NullString
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&ownerID,
		&title,
		&artist,
		&releaseType,
		&genres,
		&releaseDate,
		&description,
		&audioRef,
		&coverRef,
		&upc,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	genreList, err := unmarshalStrings(genres)
	if err != nil {
		return nil, err
	}

	src := &release.Source{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Artist:      artist,
		Type:        release.Type(releaseType),
		Genres:      genreList,
		ReleaseDate: releaseDate.String,
		Description: description.String,
		AudioRef:    audioRef.String,
		CoverRef:    coverRef.String,
		UPC:         upc.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		src.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		src.UpdatedAt = updated
	}
	return src, nil
}

const pipelineColumns = "id, owner_id, source_release_id, title, artist, genre, release_date, platforms_json, status, streams, revenue, created_at, updated_at, submitted_at"

func scanPipeline(scanner interface{ Scan(dest ...any) error }) (*release.Pipeline, error) {
	var (
		id           string
		ownerID      string
		sourceID     string
		title        string
		artist       string
		genre        sql.NullString
		releaseDate  sql.NullString
		platforms    sql.NullString
		statusStr    string
		streams      int64
		revenue      float64
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
		submittedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&ownerID,
		&sourceID,
		&title,
		&artist,
		&genre,
		&releaseDate,
		&platforms,
		&statusStr,
		&streams,
		&revenue,
		&createdRaw,
		&updatedRaw,
		&submittedRaw,
	); err != nil {
		return nil, err
	}

	platformList, err := unmarshalStrings(platforms)
	if err != nil {
		return nil, err
	}

	p := &release.Pipeline{
		ID:              id,
		OwnerID:         ownerID,
		SourceReleaseID: sourceID,
		Title:           title,
		Artist:          artist,
		Genre:           genre.String,
		ReleaseDate:     releaseDate.String,
		Platforms:       platformList,
		Status:          release.Status(statusStr),
		Streams:         streams,
		Revenue:         revenue,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		p.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		p.UpdatedAt = updated
	}
	if submittedRaw.Valid {
		if submitted, err := parseTimeString(submittedRaw.String); err == nil {
			p.SubmittedAt = &submitted
		}
	}
	return p, nil
}
