package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"pressline/internal/docpack"
)

// Paths reports where the three documents of one package were written.
type Paths struct {
	Metadata     string
	Instructions string
	Checklist    string
}

// Exporter writes generated hand-off packages to the export directory. The
// generator itself performs no I/O; this is the boundary that does.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

// NewExporter constructs an exporter rooted at the given directory.
func NewExporter(dir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{dir: dir, logger: logger}
}

// Export writes the package documents under <dir>/<releaseID>/. An advisory
// lock on the export directory keeps concurrent export runs from
// interleaving writes to the same release.
func (e *Exporter) Export(ctx context.Context, releaseID string, pkg docpack.Package) (Paths, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("ensure export directory: %w", err)
	}

	lock := flock.New(filepath.Join(e.dir, ".pressline.lock"))
	locked, err := lock.TryLockContext(ctx, 0)
	if err != nil {
		return Paths{}, fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return Paths{}, fmt.Errorf("export directory is locked by another process")
	}
	defer func() { _ = lock.Unlock() }()

	target := filepath.Join(e.dir, releaseID)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create package directory: %w", err)
	}

	checklist, err := json.MarshalIndent(pkg.Checklist, "", "  ")
	if err != nil {
		return Paths{}, fmt.Errorf("marshal checklist: %w", err)
	}

	paths := Paths{
		Metadata:     filepath.Join(target, "metadata.csv"),
		Instructions: filepath.Join(target, "instructions.txt"),
		Checklist:    filepath.Join(target, "checklist.json"),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeDoc(paths.Metadata, []byte(docpack.MetadataCSV(pkg.Metadata)))
	})
	g.Go(func() error {
		return writeDoc(paths.Instructions, []byte(pkg.Instructions))
	})
	g.Go(func() error {
		return writeDoc(paths.Checklist, append(checklist, '\n'))
	})
	if err := g.Wait(); err != nil {
		return Paths{}, err
	}

	e.logger.Info("package exported", "release_id", releaseID, "dir", target)
	return paths, nil
}

func writeDoc(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
