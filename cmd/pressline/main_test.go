package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pressline/internal/services"
)

func TestPipelineEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	const owner = "artist-1"

	out, _, err := runCLI(t, []string{
		"add-release", "Night Drive", "Mira Vale",
		"--genre", "Electronic", "--genre", "Ambient",
		"--date", "2026-09-12",
		"--audio", "assets/audio/master.wav",
		"--cover", "assets/cover/artwork.jpg",
		"--json",
	}, env.configPath, owner)
	if err != nil {
		t.Fatalf("add-release: %v", err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("decode add-release output: %v", err)
	}
	if created.ID == "" {
		t.Fatal("add-release returned no id")
	}

	out, _, err = runCLI(t, []string{
		"sync", created.ID,
		"--platform", "spotify", "--platform", "made-up", "--platform", "spotify",
		"--json",
	}, env.configPath, owner)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	var synced struct {
		ID        string   `json:"id"`
		Status    string   `json:"status"`
		Platforms []string `json:"platforms"`
	}
	if err := json.Unmarshal([]byte(out), &synced); err != nil {
		t.Fatalf("decode sync output: %v", err)
	}
	if synced.Status != "draft" {
		t.Fatalf("sync status = %q, want draft", synced.Status)
	}
	if len(synced.Platforms) != 1 || synced.Platforms[0] != "Spotify" {
		t.Fatalf("sync platforms = %v, want [Spotify]", synced.Platforms)
	}

	out, _, err = runCLI(t, []string{"sync", created.ID}, env.configPath, owner)
	if err != nil {
		t.Fatalf("duplicate sync should be informational: %v", err)
	}
	requireContains(t, out, "Already synced as "+synced.ID)

	out, _, err = runCLI(t, []string{"package", synced.ID}, env.configPath, owner)
	if err != nil {
		t.Fatalf("package: %v", err)
	}
	requireContains(t, out, "RELEASE DISTRIBUTION PACKAGE")
	requireContains(t, out, "Status: submitted")

	_, _, err = runCLI(t, []string{"package", synced.ID, "--export"}, env.configPath, owner)
	if err != nil {
		t.Fatalf("package --export: %v", err)
	}
	for _, name := range []string{"metadata.csv", "instructions.txt", "checklist.json"} {
		path := filepath.Join(env.cfg.Paths.ExportDir, synced.ID, name)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing exported document %s: %v", name, err)
		}
	}

	_, _, err = runCLI(t, []string{"metrics", synced.ID, "100", "1.50"}, env.configPath, owner)
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("metrics before publish = %v, want invalid transition", err)
	}

	out, _, err = runCLI(t, []string{"advance", synced.ID, "processing"}, env.configPath, owner)
	if err != nil {
		t.Fatalf("advance to processing: %v", err)
	}
	requireContains(t, out, "is now processing")

	out, _, err = runCLI(t, []string{"advance", synced.ID, "published"}, env.configPath, owner)
	if err != nil {
		t.Fatalf("advance to published: %v", err)
	}
	requireContains(t, out, "is now published")

	if _, _, err = runCLI(t, []string{"metrics", synced.ID, "1000", "12.50"}, env.configPath, owner); err != nil {
		t.Fatalf("metrics: %v", err)
	}

	out, _, err = runCLI(t, []string{"stats", "--json"}, env.configPath, owner)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var summary struct {
		TotalReleases int     `json:"total_releases"`
		Published     int     `json:"published"`
		TotalStreams  int64   `json:"total_streams"`
		TotalRevenue  float64 `json:"total_revenue"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode stats output: %v", err)
	}
	if summary.TotalReleases != 1 || summary.Published != 1 {
		t.Fatalf("stats counts = %+v", summary)
	}
	if summary.TotalStreams != 1000 || summary.TotalRevenue != 12.50 {
		t.Fatalf("stats totals = %+v", summary)
	}

	out, _, err = runCLI(t, []string{"releases", "--status", "published"}, env.configPath, owner)
	if err != nil {
		t.Fatalf("releases: %v", err)
	}
	requireContains(t, out, "Night Drive")
}

func TestAdvanceRefusesUnknownStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"advance", "some-id", "archived"}, env.configPath, "artist-1")
	if err == nil {
		t.Fatal("expected an error for an unknown status")
	}
	requireContains(t, err.Error(), "unknown status")
}

func TestSyncMissingSourceIsNotFound(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"sync", "no-such-release"}, env.configPath, "artist-1")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("sync of missing source = %v, want not found", err)
	}
}

func TestOwnerFallsBackToEnvironment(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv(defaultOwnerEnv, "env-artist")

	out, _, err := runCLI(t, []string{"releases"}, env.configPath, "")
	if err != nil {
		t.Fatalf("releases with env owner: %v", err)
	}
	requireContains(t, out, "No pipeline releases")
}

func TestCatalogListsPlatforms(t *testing.T) {
	out, _, err := runCLI(t, []string{"catalog", "--category", "streaming"}, "", "")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	requireContains(t, out, "Spotify")
	requireContains(t, out, "spotify")
	if _, _, err := runCLI(t, []string{"catalog", "--category", "vinyl"}, "", ""); err == nil {
		t.Fatal("expected an error for an unknown category")
	}
}
