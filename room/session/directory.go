package session

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	SessionsDir   = "sessions"
	LatestSymlink = "latest"
)

type Dir struct {
	Path      string    // Absolute path to session directory
	ID        string    // Unique session identifier
	Timestamp time.Time // When the session was created
}

// Create makes a new session directory under base and points base/latest at it.
func Create(base string) (*Dir, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("creating sessions directory: %w", err)
	}

	id := GenerateID()

	absPath, err := filepath.Abs(filepath.Join(base, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	latestPath := filepath.Join(base, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		// Don't fail if symlink creation fails
		log.Printf("Warning: failed to create latest symlink: %v", err)
	}

	return &Dir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// FilePath returns the absolute path for a file in the session directory
func (d *Dir) FilePath(filename string) string {
	return filepath.Join(d.Path, filename)
}

// CopyConfigFile copies the provided config file to the session directory
func (d *Dir) CopyConfigFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	destPath := d.FilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
