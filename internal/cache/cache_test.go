package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, ttl, maxMB int) *Store {
	t.Helper()
	s, err := New(Options{Directory: t.TempDir(), Enabled: true, TTLSeconds: ttl, MaxSizeMB: maxMB})
	require.NoError(t, err)
	return s
}

func TestEntry(t *testing.T) {
	data := json.RawMessage(`{"brandName":"Toyota"}`)
	entry := NewEntry("k", "manufacturers", data, 60)

	assert.False(t, entry.IsExpired())
	assert.Greater(t, entry.TimeUntilExpiration(), time.Duration(0))
	assert.LessOrEqual(t, entry.Age(), time.Second)

	var decoded map[string]string
	require.NoError(t, entry.Decode(&decoded))
	assert.Equal(t, "Toyota", decoded["brandName"])

	t.Run("expired", func(t *testing.T) {
		e := NewEntry("k", "", data, 60)
		e.ExpiresAt = time.Now().Add(-time.Second)
		assert.True(t, e.IsExpired())
		assert.Equal(t, time.Duration(0), e.TimeUntilExpiration())
	})

	t.Run("json timestamps", func(t *testing.T) {
		encoded, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), entry.CreatedAt.Format(time.RFC3339))

		var back Entry
		require.NoError(t, json.Unmarshal(encoded, &back))
		assert.Equal(t, entry.Key, back.Key)
		assert.Equal(t, entry.Operation, back.Operation)
		assert.Equal(t, entry.TTLSeconds, back.TTLSeconds)
		assert.Equal(t, entry.ExpiresAt.Format(time.RFC3339), back.ExpiresAt.Format(time.RFC3339))
	})
}

func TestKey(t *testing.T) {
	a := Key("Manufacturers ", "http://localhost:8000/")
	b := Key("manufacturers", "http://localhost:8000")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, Key("manufacturers", "http://prod:8000"))
	assert.NotEqual(t, Key("trims", "u", "a", "b"), Key("trims", "u", "b", "a"))
	assert.NotEqual(t, Key("trims", "u", "ab"), Key("trims", "u", "a", "b"))
}

func TestStore_SetGetDelete(t *testing.T) {
	s := newStore(t, 60, 0)
	data := json.RawMessage(`[1,2,3]`)

	require.NoError(t, s.Set("k1", "numbers", data))
	entry, err := s.Get("k1")
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(entry.Data))
	assert.Equal(t, "numbers", entry.Operation)

	info, err := os.Stat(filepath.Join(s.Dir(), "k1.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, s.Delete("k1"))
	_, err = s.Get("k1")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete("k1"), "deleting a missing key is fine")
}

func TestStore_InvalidKey(t *testing.T) {
	s := newStore(t, 60, 0)
	_, err := s.Get("")
	require.ErrorIs(t, err, ErrInvalidKey)
	require.ErrorIs(t, s.Set("", "", nil), ErrInvalidKey)
}

func TestStore_KeySanitised(t *testing.T) {
	s := newStore(t, 60, 0)
	require.NoError(t, s.Set("a/b:c", "", json.RawMessage(`1`)))
	_, err := os.Stat(filepath.Join(s.Dir(), "a_b_c.json"))
	require.NoError(t, err)
}

func TestStore_Expired(t *testing.T) {
	s := newStore(t, -1, 0)
	require.NoError(t, s.Set("old", "", json.RawMessage(`1`)))

	_, err := s.Get("old")
	require.ErrorIs(t, err, ErrExpired)

	_, err = os.Stat(filepath.Join(s.Dir(), "old.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expired entry is removed on read")
}

func TestStore_ClearAndCleanup(t *testing.T) {
	dir := t.TempDir()
	fresh, err := New(Options{Directory: dir, Enabled: true, TTLSeconds: 60})
	require.NoError(t, err)
	stale, err := New(Options{Directory: dir, Enabled: true, TTLSeconds: -1})
	require.NoError(t, err)

	require.NoError(t, fresh.Set("a", "", json.RawMessage(`1`)))
	require.NoError(t, stale.Set("b", "", json.RawMessage(`2`)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("not json"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0600))

	st, err := fresh.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, st.Entries)
	assert.Equal(t, 2, st.Expired)
	assert.Positive(t, st.Bytes)

	removed, err := fresh.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = fresh.Clear()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err, "non-cache files are left alone")
}

func TestStore_EvictsOldestOverCap(t *testing.T) {
	s := newStore(t, 60, 1)
	big := json.RawMessage(`"` + strings.Repeat("x", 400*1024) + `"`)

	require.NoError(t, s.Set("first", "", big))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(s.Dir(), "first.json"), past, past))
	require.NoError(t, s.Set("second", "", big))
	require.NoError(t, s.Set("third", "", big))

	_, err := s.Get("first")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get("third")
	require.NoError(t, err)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.LessOrEqual(t, st.Bytes, int64(bytesPerMB))
}

func TestStore_Disabled(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	require.ErrorIs(t, s.Set("k", "", nil), ErrDisabled)
	_, err = s.Get("k")
	require.ErrorIs(t, err, ErrDisabled)
	_, err = s.Clear()
	require.ErrorIs(t, err, ErrDisabled)
	_, err = s.Stats()
	require.ErrorIs(t, err, ErrDisabled)
}

func TestNew_RequiresDirectory(t *testing.T) {
	_, err := New(Options{Enabled: true})
	require.ErrorIs(t, err, ErrNoDir)
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 60, 0)
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"Toyota", "BMW"}, nil
	}

	got, err := Fetch(ctx, s, "brands", "manufacturers", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Toyota", "BMW"}, got)

	got, err = Fetch(ctx, s, "brands", "manufacturers", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Toyota", "BMW"}, got)
	assert.Equal(t, 1, calls, "second call is served from cache")

	t.Run("load error is not cached", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Fetch(ctx, s, "failing", "", func(context.Context) (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
		_, err = s.Get("failing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nil store always loads", func(t *testing.T) {
		n := 0
		for range 2 {
			_, err := Fetch(ctx, nil, "k", "", func(context.Context) (int, error) { n++; return n, nil })
			require.NoError(t, err)
		}
		assert.Equal(t, 2, n)
	})
}

func TestTTL(t *testing.T) {
	require.NoError(t, ValidateTTL(120))
	require.ErrorIs(t, ValidateTTL(10), ErrInvalidTTL)

	ttl, err := ParseTTL("3600")
	require.NoError(t, err)
	assert.Equal(t, 3600, ttl)

	ttl, err = ParseTTL("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 5400, ttl)

	_, err = ParseTTL("8d")
	require.Error(t, err)
	_, err = ParseTTL("30")
	require.ErrorIs(t, err, ErrInvalidTTL)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 30*time.Minute, "2h30m"},
		{72 * time.Hour, "3d"},
		{74 * time.Hour, "3d2h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}
}
