package experiment

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

const LatestSymlink = "latest"

// RunDir is the output directory of a single CLI run
type RunDir struct {
	Path      string    // Absolute path to run directory
	ID        string    // Unique run identifier
	Timestamp time.Time // When the run was created
}

// CreateRunDirectory creates a new run directory under baseDir and points
// the latest symlink at it
func CreateRunDirectory(baseDir string) (*RunDir, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("creating runs directory: %w", err)
	}

	id := GenerateRunID()

	absPath, err := filepath.Abs(filepath.Join(baseDir, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	latestPath := filepath.Join(baseDir, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		// A missing symlink only costs convenience
		log.Printf("Warning: failed to create latest symlink: %v", err)
	}

	return &RunDir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// FilePath returns the absolute path for a file in the run directory
func (r *RunDir) FilePath(filename string) string {
	return filepath.Join(r.Path, filename)
}

// CopyFile copies srcPath into the run directory under its own base name
func (r *RunDir) CopyFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	if err := os.WriteFile(r.FilePath(filepath.Base(srcPath)), content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(srcPath), err)
	}

	return nil
}

// WriteFile writes data to filename inside the run directory
func (r *RunDir) WriteFile(filename string, data []byte) error {
	if err := os.WriteFile(r.FilePath(filename), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}
