package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tt "github.com/asplogic/jshint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	rcFile := filepath.Join(tmpDir, ".jshintrc")

	cache := NewCache(rcFile)
	output := &tt.ParsedOutput{
		Diagnostics: []tt.Diagnostic{{Line: 1, Column: 5, Message: "Missing semicolon."}},
	}
	req := tt.LintRequest{Text: "var a = 1", PathHint: "/p/a.js"}

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get(tt.LintRequest{Text: "nothing"})
		assert.False(t, found)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		cache.Set(req, output)

		got, found := cache.Get(req)
		assert.True(t, found)
		assert.Equal(t, output, got)

		_, found = cache.Get(tt.LintRequest{Text: req.Text, PathHint: "/p/b.js"})
		assert.False(t, found, "path hint is part of the key")

		_, found = cache.Get(tt.LintRequest{Text: req.Text + ";", PathHint: req.PathHint})
		assert.False(t, found, "text is part of the key")
	})

	t.Run("DependencyChanged", func(t *testing.T) {
		cache.Set(req, output)
		require.NoError(t, os.WriteFile(rcFile, []byte(`{"asi": true}`), 0o644))

		_, found := cache.Get(req)
		assert.False(t, found)
		assert.Equal(t, 0, cache.Len())

		cache.Set(req, output)
		_, found = cache.Get(req)
		assert.True(t, found, "cache is usable again after the change")
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		cache.Set(req, output)
		cache.InvalidateAll()
		assert.Equal(t, 0, cache.Len())
	})
}

func TestCache_MaxAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCache()
	cache.now = func() time.Time { return now }
	cache.SetMaxAge(time.Minute)

	req := tt.LintRequest{Text: "x"}
	cache.Set(req, &tt.ParsedOutput{})

	now = now.Add(30 * time.Second)
	_, found := cache.Get(req)
	assert.True(t, found)

	now = now.Add(time.Minute)
	_, found = cache.Get(req)
	assert.False(t, found)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_Eviction(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCache()
	cache.now = func() time.Time { return now }
	cache.maxEntries = 2

	first := tt.LintRequest{Text: "1"}
	second := tt.LintRequest{Text: "2"}
	third := tt.LintRequest{Text: "3"}

	cache.Set(first, &tt.ParsedOutput{})
	now = now.Add(time.Second)
	cache.Set(second, &tt.ParsedOutput{})
	now = now.Add(time.Second)
	_, _ = cache.Get(first)
	now = now.Add(time.Second)
	cache.Set(third, &tt.ParsedOutput{})

	assert.Equal(t, 2, cache.Len())
	_, found := cache.Get(second)
	assert.False(t, found, "least recently used entry is evicted")
	_, found = cache.Get(first)
	assert.True(t, found)
}
