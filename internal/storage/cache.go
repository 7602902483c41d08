package storage

import (
	"sync"

	"github.com/promptforge/prompt-forge/internal/models"
)

// TemplateCache is an id-keyed, in-memory shadow of the template files on
// disk. It is strictly a read-through/write-through cache: populated on load
// misses, updated on save, evicted on delete, and cleared wholesale on
// cleanup. Entries never expire within a session.
type TemplateCache struct {
	mu        sync.RWMutex
	templates map[string]*models.Template
}

// NewTemplateCache creates an empty cache.
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		templates: make(map[string]*models.Template),
	}
}

// Get returns the cached template for id, if present.
func (c *TemplateCache) Get(id string) (*models.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.templates[id]
	return t, ok
}

// Set stores or replaces the cache entry for id.
func (c *TemplateCache) Set(id string, t *models.Template) {
	c.mu.Lock()
	c.templates[id] = t
	c.mu.Unlock()
}

// Delete evicts the entry for id, if present.
func (c *TemplateCache) Delete(id string) {
	c.mu.Lock()
	delete(c.templates, id)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *TemplateCache) Clear() {
	c.mu.Lock()
	c.templates = make(map[string]*models.Template)
	c.mu.Unlock()
}

// Len returns the number of cached templates.
func (c *TemplateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}
