package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileDestination replaces a local file with each snapshot.
type FileDestination struct {
	Path string
}

func (d FileDestination) String() string { return d.Path }

// Write goes through a temp file in the same directory so readers never see
// a partial snapshot.
func (d FileDestination) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(d.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".listings-export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.Path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
