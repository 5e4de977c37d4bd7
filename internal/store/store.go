// Package store implements durable, process-lifetime storage for every
// entity collection. Each collection is backed by one JSON file in the data
// directory; all collections are loaded fully into memory when the store is
// opened, every read is served from memory, and every mutation rewrites the
// affected collection's file in full.
//
// No business logic lives here — only persistence, in-memory queries, and
// the cross-entity bookkeeping (parent id lists, cascade deletes) that keeps
// the files mutually consistent.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// Backing file names, one per collection. The current user and session are
// single objects rather than arrays but follow the same rewrite discipline.
const (
	fileCurrentUser = "current_user.json"
	fileSession     = "session.json"
	fileUsers       = "users.json"
	fileTrips       = "trips.json"
	fileSubgroups   = "subgroups.json"
	fileStops       = "itinerary_stops.json"
	fileMessages    = "messages.json"
	fileLocations   = "locations.json"
	fileInvitations = "invitations.json"
	fileMemories    = "memories.json"
)

// Store owns the authoritative in-memory collections and their backing
// files. Construct one per process with Open and hand it to the services —
// there is no package-level singleton.
//
// A single RWMutex serializes all mutations; reads take the read lock and
// return copies, so callers never observe a collection mid-mutation. The
// trip-delete cascade runs entirely under one write lock, so concurrent
// readers see either the trip with all its children or neither.
type Store struct {
	dir string
	log *slog.Logger

	mu          sync.RWMutex
	degraded    bool
	currentUser *domain.User
	session     *domain.Session
	users       []domain.User
	trips       []domain.Trip
	subgroups   []domain.Subgroup
	stops       []domain.ItineraryStop
	messages    []domain.Message
	locations   []domain.UserLocation
	invitations []domain.Invitation
	memories    []domain.Memory
}

// Open creates the data directory if needed and loads every collection.
//
// A missing file initializes its collection empty — that is the normal
// first-run state. A file that exists but fails to decode also initializes
// empty, but logs at Warn and flips the Degraded flag so tests and callers
// can tell "no data" apart from "data lost to a corrupt file".
func Open(dir string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}

	s := &Store{dir: dir, log: log}
	s.users = loadCollection[domain.User](s, fileUsers)
	s.trips = loadCollection[domain.Trip](s, fileTrips)
	s.subgroups = loadCollection[domain.Subgroup](s, fileSubgroups)
	s.stops = loadCollection[domain.ItineraryStop](s, fileStops)
	s.messages = loadCollection[domain.Message](s, fileMessages)
	s.locations = loadCollection[domain.UserLocation](s, fileLocations)
	s.invitations = loadCollection[domain.Invitation](s, fileInvitations)
	s.memories = loadCollection[domain.Memory](s, fileMemories)
	s.currentUser = loadObject[domain.User](s, fileCurrentUser)
	s.session = loadObject[domain.Session](s, fileSession)
	return s, nil
}

// Dir returns the data directory the store was opened on.
func (s *Store) Dir() string { return s.dir }

// Degraded reports whether any backing file failed to decode during Open.
// The affected collections started empty; the broken files are overwritten
// on the next save of their collection.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// loadCollection reads one JSON-array backing file into a slice.
// Missing file → nil slice, no degradation. Unreadable or undecodable
// file → nil slice, Warn log, degraded flag.
func loadCollection[T any](s *Store, file string) []T {
	path := filepath.Join(s.dir, file)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		s.log.Warn("collection unreadable, starting empty", "file", file, "error", err)
		s.degraded = true
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn("collection corrupt, starting empty", "file", file, "error", err)
		s.degraded = true
		return nil
	}
	return out
}

// loadObject reads one single-object backing file (current user, session).
func loadObject[T any](s *Store, file string) *T {
	path := filepath.Join(s.dir, file)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		s.log.Warn("object unreadable, starting empty", "file", file, "error", err)
		s.degraded = true
		return nil
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn("object corrupt, starting empty", "file", file, "error", err)
		s.degraded = true
		return nil
	}
	return out
}

// writeFile rewrites one backing file atomically: encode to a temp file in
// the same directory, fsync, then rename over the target. A crash mid-write
// leaves the previous file intact.
//
// Callers must hold the write lock.
func (s *Store) writeFile(file string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", file, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", file, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", file, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, file)); err != nil {
		return fmt.Errorf("rename %s: %w", file, err)
	}
	return nil
}

// persist rewrites a collection file, logging rather than failing the
// caller. Most writes use this: the in-memory state is authoritative and a
// disk failure must not crash a save that already happened in memory.
// Operations that need rollback-on-failure call writeFile directly.
func (s *Store) persist(file string, v any) {
	if err := s.writeFile(file, v); err != nil {
		s.log.Error("persist failed, in-memory state ahead of disk", "file", file, "error", err)
	}
}

// removeFile deletes a backing file, ignoring a file that is already gone.
// Used by the current-user nil save (logout) and session clearing.
func (s *Store) removeFile(file string) {
	if err := os.Remove(filepath.Join(s.dir, file)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error("remove failed", "file", file, "error", err)
	}
}

// upsert replaces the element with a matching id or appends when absent.
func upsert[T any](list *[]T, v T, id func(T) uuid.UUID) {
	for i := range *list {
		if id((*list)[i]) == id(v) {
			(*list)[i] = v
			return
		}
	}
	*list = append(*list, v)
}

// remove deletes all elements matching the predicate, reporting whether
// anything was removed.
func remove[T any](list *[]T, match func(T) bool) bool {
	kept := (*list)[:0]
	removed := false
	for _, v := range *list {
		if match(v) {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	*list = kept
	return removed
}
