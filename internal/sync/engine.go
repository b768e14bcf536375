package sync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"pressline/internal/catalog"
	"pressline/internal/release"
	"pressline/internal/services"
	"pressline/internal/store"
)

// Engine copies a source release into the distribution pipeline exactly
// once per (owner, source release) pair.
type Engine struct {
	store  *store.Store
	logger *slog.Logger
}

// NewEngine constructs a sync engine over the given store.
func NewEngine(st *store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: st, logger: logger}
}

// Sync enrolls a source release into the pipeline. The new pipeline release
// copies title, artist, primary genre, and release date, resolves the
// selected platform ids against the catalog (unknown ids are dropped
// silently since the catalog may evolve), and starts in draft.
//
// A source that is already enrolled yields the existing pipeline release
// together with a services.ErrConflict-tagged error; callers should treat
// that as informational rather than fatal.
func (e *Engine) Sync(ctx context.Context, ownerID, sourceReleaseID string, platformIDs []string) (*release.Pipeline, error) {
	src, err := e.store.GetSource(ctx, ownerID, sourceReleaseID)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "sync", "load source", "", err)
	}
	if src == nil {
		return nil, services.Wrap(services.ErrNotFound, "sync", "load source", "source release "+sourceReleaseID+" does not exist for owner", nil)
	}

	existing, err := e.store.FindPipelineBySource(ctx, ownerID, sourceReleaseID)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "sync", "check enrollment", "", err)
	}
	if existing != nil {
		return existing, services.Wrap(services.ErrConflict, "sync", "enroll", "already synced", nil)
	}

	pipeline := &release.Pipeline{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		SourceReleaseID: src.ID,
		Title:           src.Title,
		Artist:          src.Artist,
		Genre:           src.PrimaryGenre(),
		ReleaseDate:     src.ReleaseDate,
		Platforms:       resolvePlatforms(platformIDs),
		Status:          release.StatusDraft,
	}

	if err := e.store.InsertPipeline(ctx, pipeline); err != nil {
		if errors.Is(err, store.ErrDuplicatePipeline) {
			// Lost a race against a concurrent sync; report the surviving record.
			winner, findErr := e.store.FindPipelineBySource(ctx, ownerID, sourceReleaseID)
			if findErr == nil && winner != nil {
				return winner, services.Wrap(services.ErrConflict, "sync", "enroll", "already synced", nil)
			}
			return nil, services.Wrap(services.ErrConflict, "sync", "enroll", "already synced", err)
		}
		return nil, services.Wrap(services.ErrStore, "sync", "insert pipeline", "", err)
	}

	e.logger.Info("release synced",
		"owner_id", ownerID,
		"source_release_id", src.ID,
		"pipeline_id", pipeline.ID,
		"platforms", len(pipeline.Platforms),
	)
	return pipeline, nil
}

// resolvePlatforms keeps the platform names the catalog recognizes,
// preserving selection order.
func resolvePlatforms(platformIDs []string) []string {
	var names []string
	seen := make(map[string]struct{}, len(platformIDs))
	for _, id := range platformIDs {
		p, ok := catalog.Resolve(id)
		if !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		names = append(names, p.Name)
	}
	return names
}
