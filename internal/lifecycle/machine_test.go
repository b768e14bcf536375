package lifecycle_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pressline/internal/config"
	"pressline/internal/lifecycle"
	"pressline/internal/logging"
	"pressline/internal/release"
	"pressline/internal/services"
	"pressline/internal/store"
	syncengine "pressline/internal/sync"
	"pressline/internal/testsupport"
)

func newMachine(t *testing.T) (*lifecycle.Machine, *syncengine.Engine, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	machine := lifecycle.NewMachine(st, config.Distribution{Language: "English", Territories: "Worldwide"}, logging.Nop())
	engine := syncengine.NewEngine(st, logging.Nop())
	return machine, engine, st
}

func TestGeneratePackageSubmitsDraft(t *testing.T) {
	machine, engine, st := newMachine(t)
	ctx := context.Background()

	src := testsupport.SeedSource(t, st, "owner-1", "Neon", "Vela", testsupport.WithAssets())
	p, err := engine.Sync(ctx, "owner-1", src.ID, []string{"spotify"})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	pkg, updated, err := machine.GeneratePackage(ctx, "owner-1", p.ID, at)
	if err != nil {
		t.Fatalf("GeneratePackage failed: %v", err)
	}
	if updated.Status != release.StatusSubmitted {
		t.Fatalf("expected submitted status, got %s", updated.Status)
	}
	if updated.SubmittedAt == nil || !updated.SubmittedAt.Equal(at) {
		t.Fatalf("expected submitted_at %v, got %v", at, updated.SubmittedAt)
	}
	if pkg.Metadata[0].Value != "Neon" || pkg.Metadata[1].Value != "Vela" {
		t.Fatalf("documents missing release identity: %#v", pkg.Metadata[:2])
	}

	stored, err := st.GetPipeline(ctx, "owner-1", p.ID)
	if err != nil {
		t.Fatalf("GetPipeline failed: %v", err)
	}
	if stored.Status != release.StatusSubmitted || stored.SubmittedAt == nil {
		t.Fatalf("submission not persisted: %#v", stored)
	}
}

func TestGeneratePackageRepeatableFromSubmitted(t *testing.T) {
	machine, engine, st := newMachine(t)
	ctx := context.Background()

	src := testsupport.SeedSource(t, st, "owner-1", "Neon", "Vela", testsupport.WithAssets())
	p, err := engine.Sync(ctx, "owner-1", src.ID, nil)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	first, _, err := machine.GeneratePackage(ctx, "owner-1", p.ID, at)
	if err != nil {
		t.Fatalf("first GeneratePackage failed: %v", err)
	}
	second, updated, err := machine.GeneratePackage(ctx, "owner-1", p.ID, at)
	if err != nil {
		t.Fatalf("second GeneratePackage failed: %v", err)
	}
	if updated.Status != release.StatusSubmitted {
		t.Fatalf("regeneration changed status to %s", updated.Status)
	}
	if first.Instructions != second.Instructions {
		t.Fatal("regenerated instructions differ")
	}
}

func TestGeneratePackageGuardsMissingAssets(t *testing.T) {
	machine, engine, st := newMachine(t)
	ctx := context.Background()

	src := testsupport.SeedSource(t, st, "owner-1", "Neon", "Vela")
	p, err := engine.Sync(ctx, "owner-1", src.ID, nil)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	_, _, err = machine.GeneratePackage(ctx, "owner-1", p.ID, time.Now())
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing assets") {
		t.Fatalf("expected missing-assets reason, got %v", err)
	}

	stored, err := st.GetPipeline(ctx, "owner-1", p.ID)
	if err != nil {
		t.Fatalf("GetPipeline failed: %v", err)
	}
	if stored.Status != release.StatusDraft {
		t.Fatalf("guard failure must not advance status, got %s", stored.Status)
	}
}

func TestGeneratePackageRefusedFromLateStates(t *testing.T) {
	machine, engine, st := newMachine(t)
	ctx := context.Background()

	src := testsupport.SeedSource(t, st, "owner-1", "Neon", "Vela", testsupport.WithAssets())
	p, err := engine.Sync(ctx, "owner-1", src.ID, nil)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if _, _, err := machine.GeneratePackage(ctx, "owner-1", p.ID, time.Now()); err != nil {
		t.Fatalf("GeneratePackage failed: %v", err)
	}
	if _, err := machine.Advance(ctx, "owner-1", p.ID, release.StatusProcessing); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	_, _, err = machine.GeneratePackage(ctx, "owner-1", p.ID, time.Now())
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from processing, got %v", err)
	}
	if !strings.Contains(err.Error(), "wrong state") {
		t.Fatalf("expected wrong-state reason, got %v", err)
	}
}

func TestAdvanceFollowsTable(t *testing.T) {
	machine, engine, st := newMachine(t)
	ctx := context.Background()

	src := testsupport.SeedSource(t, st, "owner-1", "Neon", "Vela", testsupport.WithAssets())
	p, err := engine.Sync(ctx, "owner-1", src.ID, nil)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	// Direct publish from draft is not defined.
	if _, err := machine.Advance(ctx, "owner-1", p.ID, release.StatusPublished); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from draft, got %v", err)
	}

	if _, _, err := machine.GeneratePackage(ctx, "owner-1", p.ID, time.Now()); err != nil {
		t.Fatalf("GeneratePackage failed: %v", err)
	}
	if _, err := machine.Advance(ctx, "owner-1", p.ID, release.StatusProcessing); err != nil {
		t.Fatalf("submitted to processing failed: %v", err)
	}
	updated, err := machine.Advance(ctx, "owner-1", p.ID, release.StatusPublished)
	if err != nil {
		t.Fatalf("processing to published failed: %v", err)
	}
	if updated.Status != release.StatusPublished {
		t.Fatalf("expected published, got %s", updated.Status)
	}

	// Published is terminal.
	if _, err := machine.Advance(ctx, "owner-1", p.ID, release.StatusProcessing); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected terminal state refusal, got %v", err)
	}
}

func TestRejectFromReviewStates(t *testing.T) {
	machine, engine, st := newMachine(t)
	ctx := context.Background()

	for name, advanceToProcessing := range map[string]bool{"submitted": false, "processing": true} {
		src := testsupport.SeedSource(t, st, "owner-1", "Track "+name, "Vela", testsupport.WithAssets())
		p, err := engine.Sync(ctx, "owner-1", src.ID, nil)
		if err != nil {
			t.Fatalf("%s: Sync failed: %v", name, err)
		}
		if _, _, err := machine.GeneratePackage(ctx, "owner-1", p.ID, time.Now()); err != nil {
			t.Fatalf("%s: GeneratePackage failed: %v", name, err)
		}
		if advanceToProcessing {
			if _, err := machine.Advance(ctx, "owner-1", p.ID, release.StatusProcessing); err != nil {
				t.Fatalf("%s: Advance failed: %v", name, err)
			}
		}

		updated, err := machine.Reject(ctx, "owner-1", p.ID)
		if err != nil {
			t.Fatalf("%s: Reject failed: %v", name, err)
		}
		if updated.Status != release.StatusRejected {
			t.Fatalf("%s: expected rejected, got %s", name, updated.Status)
		}

		// Rejected is terminal.
		if _, err := machine.Advance(ctx, "owner-1", p.ID, release.StatusProcessing); !errors.Is(err, services.ErrInvalidTransition) {
			t.Fatalf("%s: expected terminal refusal, got %v", name, err)
		}
	}
}

func TestAdvanceRefusesSkippedStates(t *testing.T) {
	machine, engine, st := newMachine(t)
	ctx := context.Background()

	src := testsupport.SeedSource(t, st, "owner-1", "Neon", "Vela", testsupport.WithAssets())
	p, err := engine.Sync(ctx, "owner-1", src.ID, nil)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if _, _, err := machine.GeneratePackage(ctx, "owner-1", p.ID, time.Now()); err != nil {
		t.Fatalf("GeneratePackage failed: %v", err)
	}

	// Publishing straight from submitted skips processing.
	_, err = machine.Advance(ctx, "owner-1", p.ID, release.StatusPublished)
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	stored, err := st.GetPipeline(ctx, "owner-1", p.ID)
	if err != nil {
		t.Fatalf("GetPipeline failed: %v", err)
	}
	if stored.Status != release.StatusSubmitted {
		t.Fatalf("refused advance must not change status, got %s", stored.Status)
	}
}

func TestAdvanceUnknownReleaseNotFound(t *testing.T) {
	machine, _, _ := newMachine(t)
	_, err := machine.Advance(context.Background(), "owner-1", "missing", release.StatusProcessing)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
