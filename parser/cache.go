package parser

import (
	"sync"
)

// templateCache is a thread-safe cache for parsed templates.
var templateCache = &struct {
	sync.RWMutex
	templates map[string]*MessageTemplate
}{
	templates: make(map[string]*MessageTemplate),
}

// ParseCached parses a template with caching to avoid repeated allocations.
// Sinks render the same handful of templates over and over, so the cache is
// never evicted.
func ParseCached(template string) (*MessageTemplate, error) {
	templateCache.RLock()
	if cached, ok := templateCache.templates[template]; ok {
		templateCache.RUnlock()
		return cached, nil
	}
	templateCache.RUnlock()

	parsed, err := Parse(template)
	if err != nil {
		return nil, err
	}

	templateCache.Lock()
	templateCache.templates[template] = parsed
	templateCache.Unlock()

	return parsed, nil
}

// ClearCache clears the template cache (useful for tests).
func ClearCache() {
	templateCache.Lock()
	templateCache.templates = make(map[string]*MessageTemplate)
	templateCache.Unlock()
}
