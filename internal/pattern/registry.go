package pattern

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry resolves user-facing keys ("fullcard", "row2", ...) to patterns
// for one board size.
type Registry struct {
	mu       sync.RWMutex
	size     int
	patterns map[string]Pattern
	aliases  map[string]string
}

// NewRegistry creates an empty registry for size×size boards.
func NewRegistry(size int) *Registry {
	return &Registry{
		size:     size,
		patterns: make(map[string]Pattern),
		aliases:  make(map[string]string),
	}
}

// NewStandardRegistry registers the standard set plus the extra shapes that
// exist for this size.
func NewStandardRegistry(size int) *Registry {
	r := NewRegistry(size)
	for i := 0; i < size; i++ {
		r.Register(fmt.Sprintf("row%d", i+1), Row(size, i))
		r.Register(fmt.Sprintf("col%d", i+1), Column(size, i))
	}
	r.Register("diagonal", Diagonal(size, true))
	r.Register("antidiagonal", Diagonal(size, false))
	r.Register("fourcorners", Corners(size))
	r.Register("fullcard", FullBoard(size))
	r.Register("x", X(size))
	r.Register("border", Outline(size))
	if p, err := Plus(size); err == nil {
		r.Register("cross", p)
	}
	if p, err := Center(size); err == nil {
		r.Register("center", p)
	}
	r.Alias("horizontal", "row1")
	r.Alias("vertical", "col1")
	r.Alias("corners", "fourcorners")
	r.Alias("full", "fullcard")
	return r
}

// Size returns the board size the registry was built for.
func (r *Registry) Size() int {
	return r.size
}

// Register adds a pattern under key. Panics on duplicate keys or on a
// pattern that does not fit the registry's board size.
func (r *Registry) Register(key string, p Pattern) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key = normalize(key)
	if _, exists := r.patterns[key]; exists {
		panic(fmt.Sprintf("pattern %q already registered", key))
	}
	if !p.IsValidForBoardSize(r.size) {
		panic(fmt.Sprintf("pattern %q does not fit a %dx%d board", key, r.size, r.size))
	}
	r.patterns[key] = p
}

// Alias makes alias resolve to an already registered key.
func (r *Registry) Alias(alias, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[normalize(alias)] = normalize(key)
}

// Get returns a pattern by key or alias, case-insensitively.
func (r *Registry) Get(key string) (Pattern, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key = normalize(key)
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	p, ok := r.patterns[key]
	return p, ok
}

// Keys returns all registered keys, sorted. Aliases are not included.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.patterns))
	for k := range r.patterns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry pairs a key with its pattern.
type Entry struct {
	Key     string  `json:"key"`
	Pattern Pattern `json:"pattern"`
}

// List returns every registered pattern sorted by key.
func (r *Registry) List() []Entry {
	keys := r.Keys()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k, Pattern: r.patterns[k]})
	}
	return out
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
