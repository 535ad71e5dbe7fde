package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/courtflow/intake-server-go/internal/model"
)

// Dir stores downloaded attachments under a single local directory. Each
// saved file gets a slot name of the form <uuid>_<basename>, so concurrent
// sessions never clobber each other and a name is never reused.
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Root() string {
	return d.root
}

// Save pins the downloaded bytes to a fresh local slot and returns the
// attachment record. The source file handle is retained on the record for
// deduplication and cleanup.
func (d *Dir) Save(sourceFileID, displayName string, data []byte) (model.Attachment, error) {
	base := filepath.Base(displayName)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "document"
	}

	path := filepath.Join(d.root, uuid.NewString()+"_"+base)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return model.Attachment{}, fmt.Errorf("write attachment: %w", err)
	}

	return model.Attachment{
		SourceFileID: sourceFileID,
		LocalPath:    path,
		DisplayName:  base,
		Data:         data,
	}, nil
}

// Remove deletes an attachment's local file. Removing a file that is
// already gone is not an error.
func (d *Dir) Remove(att model.Attachment) error {
	if att.LocalPath == "" {
		return nil
	}
	if err := os.Remove(att.LocalPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove attachment: %w", err)
	}
	return nil
}

// RemoveAll reclaims storage for every attachment in the list, logging
// failures instead of stopping.
func (d *Dir) RemoveAll(files []model.Attachment) {
	for _, f := range files {
		if err := d.Remove(f); err != nil {
			log.Error().Err(err).Str("path", f.LocalPath).Msg("failed to remove attachment")
		}
	}
}

// Sweep deletes files older than maxAge and returns how many were removed.
// It backs the periodic cleanup of attachments orphaned by expired sessions.
func (d *Dir) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return 0, fmt.Errorf("read storage dir: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(d.root, entry.Name())); err != nil {
			log.Warn().Err(err).Str("name", entry.Name()).Msg("failed to sweep file")
			continue
		}
		removed++
	}
	return removed, nil
}
