package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	fileExtension = ".json"
	bytesPerMB    = 1 << 20
)

// Common cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
	ErrNoDir      = errors.New("cache directory cannot be empty")
)

// Options configures a Store.
type Options struct {
	Directory  string
	Enabled    bool
	TTLSeconds int
	// MaxSizeMB caps the total size of cache files; 0 means unlimited.
	MaxSizeMB int
}

// Stats summarises the files in a Store.
type Stats struct {
	Entries int
	Expired int
	Bytes   int64
}

// Store is a file-backed cache safe for concurrent use.
type Store struct {
	dir        string
	enabled    bool
	ttlSeconds int
	maxBytes   int64

	mu sync.RWMutex
}

// New creates a Store, creating its directory when enabled. A disabled store
// answers every call with ErrDisabled.
func New(opts Options) (*Store, error) {
	if !opts.Enabled {
		return &Store{}, nil
	}
	if opts.Directory == "" {
		return nil, ErrNoDir
	}
	if err := os.MkdirAll(opts.Directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	ttl := opts.TTLSeconds
	if ttl == 0 {
		ttl = DefaultTTLSeconds
	}
	return &Store{
		dir:        opts.Directory,
		enabled:    true,
		ttlSeconds: ttl,
		maxBytes:   int64(opts.MaxSizeMB) * bytesPerMB,
	}, nil
}

// Enabled reports whether the store caches anything.
func (s *Store) Enabled() bool { return s.enabled }

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// TTL returns the lifetime given to new entries.
func (s *Store) TTL() time.Duration { return time.Duration(s.ttlSeconds) * time.Second }

// Get returns the entry for key. Expired entries are removed and reported as
// ErrExpired.
func (s *Store) Get(key string) (*Entry, error) {
	if err := s.check(key); err != nil {
		return nil, err
	}

	path := s.path(key)
	s.mu.RLock()
	entry, err := readEntry(path)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	return entry, nil
}

// Set stores data under key, replacing any previous entry. When the store has
// a size cap the oldest entries are evicted until the new file fits.
func (s *Store) Set(key, operation string, data json.RawMessage) error {
	if err := s.check(key); err != nil {
		return err
	}

	entry := NewEntry(key, operation, data, s.ttlSeconds)
	encoded, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	if s.maxBytes > 0 {
		if err := s.evict(int64(len(encoded)), path); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.check(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear() (int, error) {
	return s.removeWhere(func(*Entry) bool { return true })
}

// CleanupExpired removes expired or unreadable entries and returns how many
// were removed.
func (s *Store) CleanupExpired() (int, error) {
	return s.removeWhere(func(e *Entry) bool { return e == nil || e.IsExpired() })
}

// Stats counts entries and their total size.
func (s *Store) Stats() (Stats, error) {
	if !s.enabled {
		return Stats{}, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.files()
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, f := range files {
		st.Entries++
		st.Bytes += f.size
		if e, err := readEntry(f.path); err != nil || e.IsExpired() {
			st.Expired++
		}
	}
	return st, nil
}

func (s *Store) check(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

func (s *Store) removeWhere(match func(*Entry) bool) (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.files()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		e, readErr := readEntry(f.path)
		if readErr != nil {
			e = nil
		}
		if !match(e) {
			continue
		}
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(f.path), err)
		}
		removed++
	}
	return removed, nil
}

// evict drops the oldest files until incoming more bytes fit under the cap.
// The file being replaced does not count against the cap. Callers hold mu.
func (s *Store) evict(incoming int64, replacing string) error {
	files, err := s.files()
	if err != nil {
		return err
	}
	files = slices.DeleteFunc(files, func(f cacheFile) bool { return f.path == replacing })

	var total int64
	for _, f := range files {
		total += f.size
	}
	slices.SortFunc(files, func(a, b cacheFile) int { return a.modTime.Compare(b.modTime) })
	for _, f := range files {
		if total+incoming <= s.maxBytes {
			break
		}
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to evict cache file: %w", err)
		}
		total -= f.size
	}
	return nil
}

type cacheFile struct {
	path    string
	size    int64
	modTime time.Time
}

func (s *Store) files() ([]cacheFile, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	out := make([]cacheFile, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != fileExtension {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, cacheFile{
			path:    filepath.Join(s.dir, de.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}
	return out, nil
}

func readEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}

// path maps key to a file name safe on every platform.
func (s *Store) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.dir, safe+fileExtension)
}
