package renamer

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// collisionResolver hands out target paths so that no two sources in one
// plan share a target. Later claimants get " - dupN" variants.
type collisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // folded target path → source path
	counters map[string]int    // folded requested path → next dup counter
}

func newCollisionResolver() *collisionResolver {
	return &collisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// resolve returns target unchanged when it is free or already owned by
// source, and the first free " - dupN" variant otherwise. The second
// result reports whether a variant was generated.
func (cr *collisionResolver) resolve(source, target string) (string, bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	key := foldPath(target)
	if owner, ok := cr.owners[key]; !ok || owner == source {
		cr.owners[key] = source
		return target, false
	}

	dir := filepath.Dir(target)
	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(filepath.Base(target), ext)

	counter := max(cr.counters[key], 1)
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		ckey := foldPath(candidate)
		if owner, ok := cr.owners[ckey]; !ok || owner == source {
			cr.counters[key] = counter + 1
			cr.owners[ckey] = source
			return candidate, true
		}
		counter++
	}
}

// foldPath maps paths that differ only in case to the same key.
func foldPath(p string) string {
	return strings.ToLower(filepath.Clean(p))
}
