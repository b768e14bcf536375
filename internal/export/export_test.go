package export_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pressline/internal/config"
	"pressline/internal/docpack"
	"pressline/internal/export"
	"pressline/internal/logging"
	"pressline/internal/release"
)

func samplePackage(t *testing.T) docpack.Package {
	t.Helper()
	src := &release.Source{
		ID:          "src-1",
		OwnerID:     "owner-1",
		Title:       "Night Drive",
		Artist:      "Mira Vale",
		Type:        release.TypeSingle,
		Genres:      []string{"Electronic"},
		ReleaseDate: "2026-09-12",
		AudioRef:    "assets/audio/master.wav",
		CoverRef:    "assets/cover/artwork.jpg",
	}
	p := &release.Pipeline{
		ID:              "rel-1",
		OwnerID:         "owner-1",
		SourceReleaseID: "src-1",
		Title:           src.Title,
		Artist:          src.Artist,
		Genre:           "Electronic",
		ReleaseDate:     src.ReleaseDate,
		Platforms:       []string{"Spotify", "Apple Music"},
		Status:          release.StatusDraft,
	}
	generatedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return docpack.Generate(p, src, config.Distribution{Label: "Indie"}, generatedAt)
}

func TestExportWritesAllDocuments(t *testing.T) {
	dir := t.TempDir()
	exp := export.NewExporter(dir, logging.Nop())

	pkg := samplePackage(t)
	paths, err := exp.Export(context.Background(), "rel-1", pkg)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	csv, err := os.ReadFile(paths.Metadata)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if !strings.Contains(string(csv), `"Night Drive"`) {
		t.Fatalf("metadata.csv missing title: %q", csv)
	}

	instructions, err := os.ReadFile(paths.Instructions)
	if err != nil {
		t.Fatalf("read instructions: %v", err)
	}
	if !strings.Contains(string(instructions), "RELEASE DISTRIBUTION PACKAGE") {
		t.Fatal("instructions missing banner")
	}

	raw, err := os.ReadFile(paths.Checklist)
	if err != nil {
		t.Fatalf("read checklist: %v", err)
	}
	var checklist docpack.Checklist
	if err := json.Unmarshal(raw, &checklist); err != nil {
		t.Fatalf("decode checklist: %v", err)
	}
	if !checklist.FilesReady.Audio {
		t.Fatal("checklist lost audio flag")
	}
}

func TestExportGroupsDocumentsPerRelease(t *testing.T) {
	dir := t.TempDir()
	exp := export.NewExporter(dir, logging.Nop())
	pkg := samplePackage(t)

	for _, id := range []string{"rel-a", "rel-b"} {
		if _, err := exp.Export(context.Background(), id, pkg); err != nil {
			t.Fatalf("export %s: %v", id, err)
		}
	}

	for _, id := range []string{"rel-a", "rel-b"} {
		if _, err := os.Stat(filepath.Join(dir, id, "metadata.csv")); err != nil {
			t.Fatalf("missing export for %s: %v", id, err)
		}
	}
}

func TestExportOverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	exp := export.NewExporter(dir, logging.Nop())
	pkg := samplePackage(t)

	if _, err := exp.Export(context.Background(), "rel-1", pkg); err != nil {
		t.Fatalf("first export: %v", err)
	}
	pkg.Instructions = "updated instructions\n"
	paths, err := exp.Export(context.Background(), "rel-1", pkg)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	data, err := os.ReadFile(paths.Instructions)
	if err != nil {
		t.Fatalf("read instructions: %v", err)
	}
	if string(data) != "updated instructions\n" {
		t.Fatalf("instructions not overwritten: %q", data)
	}
}
