package docxbuilder

import (
	"container/list"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

// TemplateCache keeps opened host templates in memory, keyed by file path.
// An entry is reloaded when the file's size or modification time changes.
type TemplateCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	lru     *list.List
	maxSize int
}

type cacheEntry struct {
	path    string
	archive *opc.Archive
	size    int64
	modTime time.Time
	element *list.Element
}

// NewTemplateCache creates a cache holding up to maxSize templates. 0 disables caching.
func NewTemplateCache(maxSize int) *TemplateCache {
	return &TemplateCache{
		entries: make(map[string]*cacheEntry),
		lru:     list.New(),
		maxSize: maxSize,
	}
}

// Load returns the template at path, opening it if it is not cached or has changed.
// The returned archive is shared and must not be modified.
func (tc *TemplateCache) Load(path string) (*opc.Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat template: %w", err)
	}

	tc.mu.Lock()
	if entry, ok := tc.entries[path]; ok {
		if entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
			tc.lru.MoveToFront(entry.element)
			tc.mu.Unlock()
			return entry.archive, nil
		}
		tc.removeLocked(entry)
	}
	tc.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	archive, err := opc.Open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}

	if tc.maxSize <= 0 {
		return archive, nil
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	if existing, ok := tc.entries[path]; ok {
		// loaded concurrently
		tc.removeLocked(existing)
	}
	for tc.lru.Len() >= tc.maxSize {
		tc.removeLocked(tc.lru.Back().Value.(*cacheEntry))
	}

	entry := &cacheEntry{
		path:    path,
		archive: archive,
		size:    info.Size(),
		modTime: info.ModTime(),
	}
	entry.element = tc.lru.PushFront(entry)
	tc.entries[path] = entry
	return archive, nil
}

func (tc *TemplateCache) removeLocked(entry *cacheEntry) {
	delete(tc.entries, entry.path)
	tc.lru.Remove(entry.element)
}

// Remove drops the template at path from the cache.
func (tc *TemplateCache) Remove(path string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if entry, ok := tc.entries[path]; ok {
		tc.removeLocked(entry)
	}
}

// Clear removes all templates from the cache
func (tc *TemplateCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.entries = make(map[string]*cacheEntry)
	tc.lru = list.New()
}

// Size returns the current number of cached templates
func (tc *TemplateCache) Size() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.entries)
}

var (
	defaultCache     *TemplateCache
	defaultCacheOnce sync.Once
)

// sharedTemplateCache is used by documents that load their template from a path.
func sharedTemplateCache() *TemplateCache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewTemplateCache(GetGlobalConfig().TemplateCacheSize)
	})
	return defaultCache
}
