package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pressline/internal/config"
	"pressline/internal/docpack"
	"pressline/internal/release"
	"pressline/internal/services"
	"pressline/internal/store"
)

// Machine drives a pipeline release through its status lifecycle. All
// transitions are single compare-and-set writes; a concurrent transition
// that wins the race leaves the loser with a stale-state error rather than
// a silently clobbered status.
type Machine struct {
	store   *store.Store
	profile config.Distribution
	logger  *slog.Logger
}

// NewMachine constructs a lifecycle machine over the given store.
func NewMachine(st *store.Store, profile config.Distribution, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{store: st, profile: profile, logger: logger}
}

// GeneratePackage renders the hand-off documents for a release. From draft
// it also advances the release to submitted and stamps the submission time;
// from submitted it is a repeatable side-effecting read that re-renders the
// same documents without touching status.
//
// The action is refused when the underlying source release is missing
// either asset, and from any status outside draft or submitted.
func (m *Machine) GeneratePackage(ctx context.Context, ownerID, pipelineID string, generatedAt time.Time) (*docpack.Package, *release.Pipeline, error) {
	p, err := m.loadPipeline(ctx, ownerID, pipelineID)
	if err != nil {
		return nil, nil, err
	}

	src, err := m.store.GetSource(ctx, ownerID, p.SourceReleaseID)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrStore, "lifecycle", "load source", "", err)
	}
	if src == nil {
		return nil, nil, services.Wrap(services.ErrNotFound, "lifecycle", "load source", "source release "+p.SourceReleaseID+" does not exist for owner", nil)
	}

	if !src.HasAudio() || !src.HasCover() {
		return nil, nil, services.Wrap(services.ErrInvalidTransition, "lifecycle", "generate package",
			"missing assets: "+missingAssetDetail(src), nil)
	}

	switch p.Status {
	case release.StatusDraft:
		submittedAt := generatedAt.UTC()
		ok, err := m.store.TransitionStatus(ctx, ownerID, p.ID, release.StatusDraft, release.StatusSubmitted, &submittedAt)
		if err != nil {
			return nil, nil, services.Wrap(services.ErrStore, "lifecycle", "submit", "", err)
		}
		if !ok {
			return nil, nil, services.Wrap(services.ErrStaleState, "lifecycle", "submit",
				"release no longer in draft; re-read and retry", nil)
		}
		p.Status = release.StatusSubmitted
		p.SubmittedAt = &submittedAt
		m.logger.Info("release submitted",
			"owner_id", ownerID,
			"pipeline_id", p.ID,
			"submitted_at", submittedAt,
		)
	case release.StatusSubmitted:
		// Re-download of the same documents; not a transition.
	default:
		return nil, nil, services.Wrap(services.ErrInvalidTransition, "lifecycle", "generate package",
			fmt.Sprintf("wrong state: cannot generate from %s", p.Status), nil)
	}

	pkg := docpack.Generate(p, src, m.profile, generatedAt)
	return &pkg, p, nil
}

// Advance performs an operator-requested status change along the lifecycle
// table: submitted to processing (upload confirmed), processing to
// published (release live), and submitted or processing to rejected.
func (m *Machine) Advance(ctx context.Context, ownerID, pipelineID string, target release.Status) (*release.Pipeline, error) {
	p, err := m.loadPipeline(ctx, ownerID, pipelineID)
	if err != nil {
		return nil, err
	}

	if !release.CanAdvance(p.Status, target) {
		return nil, services.Wrap(services.ErrInvalidTransition, "lifecycle", "advance",
			fmt.Sprintf("wrong state: %s to %s is not defined", p.Status, target), nil)
	}

	ok, err := m.store.TransitionStatus(ctx, ownerID, p.ID, p.Status, target, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "lifecycle", "advance", "", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrStaleState, "lifecycle", "advance",
			fmt.Sprintf("release left %s concurrently; re-read and retry", p.Status), nil)
	}

	from := p.Status
	p.Status = target
	m.logger.Info("release advanced",
		"owner_id", ownerID,
		"pipeline_id", p.ID,
		"from", from,
		"to", target,
	)
	return p, nil
}

// Reject moves a submitted or processing release to the terminal rejected
// status.
func (m *Machine) Reject(ctx context.Context, ownerID, pipelineID string) (*release.Pipeline, error) {
	return m.Advance(ctx, ownerID, pipelineID, release.StatusRejected)
}

func (m *Machine) loadPipeline(ctx context.Context, ownerID, pipelineID string) (*release.Pipeline, error) {
	p, err := m.store.GetPipeline(ctx, ownerID, pipelineID)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "lifecycle", "load pipeline", "", err)
	}
	if p == nil {
		return nil, services.Wrap(services.ErrNotFound, "lifecycle", "load pipeline", "pipeline release "+pipelineID+" does not exist for owner", nil)
	}
	return p, nil
}

func missingAssetDetail(src *release.Source) string {
	switch {
	case !src.HasAudio() && !src.HasCover():
		return "audio and cover not attached"
	case !src.HasAudio():
		return "audio not attached"
	default:
		return "cover not attached"
	}
}
