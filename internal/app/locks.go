package app

import (
	"path/filepath"
	"strings"
	"sync"
)

// SubtreeLocks hands out one token per target subtree. A path is busy while it, an
// ancestor or a descendant is held.
type SubtreeLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewSubtreeLocks() *SubtreeLocks {
	return &SubtreeLocks{held: make(map[string]struct{})}
}

// TryAcquire takes the token for path without waiting. The returned release func is
// safe to call more than once.
func (l *SubtreeLocks) TryAcquire(path string) (release func(), ok bool) {
	path = filepath.Clean(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	for held := range l.held {
		if overlaps(held, path) {
			return nil, false
		}
	}
	l.held[path] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, path)
			l.mu.Unlock()
		})
	}, true
}

func (l *SubtreeLocks) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

func overlaps(a, b string) bool {
	return a == b || isWithin(a, b) || isWithin(b, a)
}

func isWithin(parent, child string) bool {
	prefix := parent
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(child, prefix)
}
