package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pressline/internal/release"
)

// ErrDuplicatePipeline indicates a pipeline release already exists for the
// (owner, source release) pair. The unique index makes this reliable even
// when two sync attempts race.
var ErrDuplicatePipeline = errors.New("pipeline release already exists for source")

// InsertPipeline persists a newly synced pipeline release.
func (s *Store) InsertPipeline(ctx context.Context, p *release.Pipeline) error {
	if p == nil {
		return errors.New("pipeline release is nil")
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	timestamp := now.Format(time.RFC3339Nano)

	platforms, err := marshalStrings(p.Platforms)
	if err != nil {
		return err
	}

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO pipeline_releases (
            id, owner_id, source_release_id, title, artist, genre, release_date,
            platforms_json, status, streams, revenue, created_at, updated_at, submitted_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.OwnerID,
		p.SourceReleaseID,
		p.Title,
		p.Artist,
		nullableString(p.Genre),
		nullableString(p.ReleaseDate),
		platforms,
		string(p.Status),
		p.Streams,
		p.Revenue,
		timestamp,
		timestamp,
		nullableTime(p.SubmittedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: source %s", ErrDuplicatePipeline, p.SourceReleaseID)
		}
		return fmt.Errorf("insert pipeline release: %w", err)
	}
	return nil
}

// GetPipeline fetches a pipeline release scoped to its owner. Returns nil
// when no matching record exists.
func (s *Store) GetPipeline(ctx context.Context, ownerID, id string) (*release.Pipeline, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+pipelineColumns+` FROM pipeline_releases WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	p, err := scanPipeline(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pipeline release: %w", err)
	}
	return p, nil
}

// FindPipelineBySource returns the pipeline release enrolled for a source
// release, or nil when the source has not been synced.
func (s *Store) FindPipelineBySource(ctx context.Context, ownerID, sourceReleaseID string) (*release.Pipeline, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+pipelineColumns+` FROM pipeline_releases WHERE owner_id = ? AND source_release_id = ?`,
		ownerID, sourceReleaseID,
	)
	p, err := scanPipeline(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pipeline by source: %w", err)
	}
	return p, nil
}

// ListPipeline returns an owner's pipeline releases filtered by status set
// (or all releases when no status is provided), ordered by creation time.
func (s *Store) ListPipeline(ctx context.Context, ownerID string, statuses ...release.Status) ([]*release.Pipeline, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + pipelineColumns + ` FROM pipeline_releases WHERE owner_id = ?`
	orderClause := ` ORDER BY created_at`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause, ownerID)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, 0, len(statuses)+1)
		args = append(args, ownerID)
		for _, status := range statuses {
			args = append(args, string(status))
		}
		query := baseQuery + ` AND status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list pipeline releases: %w", err)
	}
	defer rows.Close()

	var releases []*release.Pipeline
	for rows.Next() {
		p, err := scanPipeline(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, p)
	}
	return releases, rows.Err()
}

// TransitionStatus performs a compare-and-set status change: the write only
// lands when the record still holds the expected prior status. Returns false
// when no row was updated, leaving the caller to distinguish a missing
// record from a lost race.
func (s *Store) TransitionStatus(ctx context.Context, ownerID, id string, from, to release.Status, submittedAt *time.Time) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE pipeline_releases
         SET status = ?, submitted_at = COALESCE(?, submitted_at), updated_at = ?
         WHERE owner_id = ? AND id = ? AND status = ?`,
		string(to),
		nullableTime(submittedAt),
		time.Now().UTC().Format(time.RFC3339Nano),
		ownerID,
		id,
		string(from),
	)
	if err != nil {
		return false, fmt.Errorf("transition status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// SetMetrics overwrites the streams and revenue figures for a published
// release. The write is conditional on the published status so stray metric
// updates never touch in-flight records. Returns false when no row matched.
func (s *Store) SetMetrics(ctx context.Context, ownerID, id string, streams int64, revenue float64) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE pipeline_releases
         SET streams = ?, revenue = ?, updated_at = ?
         WHERE owner_id = ? AND id = ? AND status = ?`,
		streams,
		revenue,
		time.Now().UTC().Format(time.RFC3339Nano),
		ownerID,
		id,
		string(release.StatusPublished),
	)
	if err != nil {
		return false, fmt.Errorf("set metrics: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// StatusCounts returns a count of an owner's pipeline releases grouped by
// status.
func (s *Store) StatusCounts(ctx context.Context, ownerID string) (map[release.Status]int, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT status, COUNT(1) FROM pipeline_releases WHERE owner_id = ? GROUP BY status`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("pipeline status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[release.Status]int)
	for rows.Next() {
		var status release.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// MetricTotals sums streams and revenue across all of an owner's pipeline
// releases. Non-published records contribute their zero defaults.
func (s *Store) MetricTotals(ctx context.Context, ownerID string) (int64, float64, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(streams), 0), COALESCE(SUM(revenue), 0)
         FROM pipeline_releases WHERE owner_id = ?`,
		ownerID,
	)
	var streams int64
	var revenue float64
	if err := row.Scan(&streams, &revenue); err != nil {
		return 0, 0, fmt.Errorf("pipeline metric totals: %w", err)
	}
	return streams, revenue, nil
}
