// Package store manages the uploads area where registered response bodies
// live. Each body is written to a fresh UUID-based file name, so concurrent
// registrations never collide and a delete can only ever remove its own
// body.
//
// The store is backed by an afero filesystem: the server runs it over the
// OS filesystem, tests over an in-memory one. There is no reference
// counting: the first delete frees a body even if a reader still holds it
// open (POSIX semantics protect in-flight reads).
package store

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/tbourn/go-mock-server/internal/domain"
)

// Store persists uploaded response bodies under a single directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// New returns a Store rooted at dir on fs, creating the directory when
// missing.
func New(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// Save writes data to a fresh <uuid>.json file inside the uploads area and
// returns the file's path, the descriptor's body_ref.
func (s *Store) Save(data []byte) (string, error) {
	name := filepath.Join(s.dir, uuid.NewString()+".json")
	if err := afero.WriteFile(s.fs, name, data, 0o644); err != nil {
		return "", domain.ErrFile
	}
	return name, nil
}

// Read returns the stored body at ref. A missing or unreadable file maps to
// ErrNotFound; the caller treats the descriptor as dangling.
func (s *Store) Read(ref string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, ref)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// Remove deletes the stored body at ref. Failure is logged and swallowed:
// body removal on endpoint delete is best effort.
func (s *Store) Remove(ref string) {
	if err := s.fs.Remove(ref); err != nil {
		log.Info().Str("file", ref).Err(err).Msg("failed to delete uploaded file")
	}
}
