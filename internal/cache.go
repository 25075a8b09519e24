package internal

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	tt "github.com/asplogic/jshint/internal/types"
)

const (
	defaultCacheMaxAge     = 10 * time.Minute
	defaultCacheMaxEntries = 256
)

type CacheEntry struct {
	Output       *tt.ParsedOutput
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache remembers parsed linter output per (text, path hint) pair.
// Entries expire after maxAge and are all dropped when one of the
// dependency files (typically .jshintrc) changes.
type Cache struct {
	entries          map[string]CacheEntry
	mutex            sync.Mutex
	maxAge           time.Duration
	maxEntries       int
	dependencyFiles  []string
	dependencyHashes map[string]string
	now              func() time.Time
}

func NewCache(dependencyFiles ...string) *Cache {
	c := &Cache{
		entries:          make(map[string]CacheEntry),
		maxAge:           defaultCacheMaxAge,
		maxEntries:       defaultCacheMaxEntries,
		dependencyFiles:  dependencyFiles,
		dependencyHashes: make(map[string]string),
		now:              time.Now,
	}
	c.updateDependencyHashes()
	return c
}

func (c *Cache) Set(req tt.LintRequest, output *tt.ParsedOutput) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.haveDependenciesChanged() {
		c.entries = make(map[string]CacheEntry)
		c.updateDependencyHashes()
	}

	if len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	now := c.now()
	c.entries[cacheKey(req)] = CacheEntry{
		Output:       output,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

func (c *Cache) Get(req tt.LintRequest) (*tt.ParsedOutput, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.haveDependenciesChanged() {
		c.entries = make(map[string]CacheEntry)
		c.updateDependencyHashes()
		return nil, false
	}

	key := cacheKey(req)
	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	// too old
	if c.now().Sub(entry.CreatedAt) > c.maxAge {
		delete(c.entries, key)
		return nil, false
	}

	entry.LastAccessed = c.now()
	c.entries[key] = entry

	return entry.Output, true
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	c.updateDependencyHashes()
}

func (c *Cache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range c.entries {
		if oldestKey == "" || entry.LastAccessed.Before(oldest) {
			oldestKey, oldest = key, entry.LastAccessed
		}
	}
	delete(c.entries, oldestKey)
}

func (c *Cache) haveDependenciesChanged() bool {
	for _, file := range c.dependencyFiles {
		if getFileHash(file) != c.dependencyHashes[file] {
			return true
		}
	}
	return false
}

func (c *Cache) updateDependencyHashes() {
	for _, file := range c.dependencyFiles {
		c.dependencyHashes[file] = getFileHash(file)
	}
}

func cacheKey(req tt.LintRequest) string {
	hash := md5.New()
	io.WriteString(hash, req.PathHint)
	hash.Write([]byte{0})
	io.WriteString(hash, req.Text)
	return fmt.Sprintf("%x", hash.Sum(nil))
}

// getFileHash returns "" for missing files so that creating or deleting a
// dependency counts as a change.
func getFileHash(filename string) string {
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ""
		}
		return "unreadable:" + err.Error()
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "unreadable:" + err.Error()
	}

	return fmt.Sprintf("%x", hash.Sum(nil))
}
