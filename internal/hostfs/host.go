// Package hostfs is the CLI's Host implementation: it backs the
// resolver's module-resolution contract with the real file system instead
// of the in-memory fakes the extractor/resolver test suites use.
package hostfs

import (
	"os"
	"path"
	"sync"

	"github.com/google/uuid"
	"github.com/zgunz42/deepkit-framework/internal/extract"
	"github.com/zgunz42/deepkit-framework/internal/surfaceparse"
)

// SynthesizedMark records one declaration the resolver flagged as needing
// its import specifier preserved through unused-import elision, tagged
// with a UUID so a run's log output can correlate repeated marks of the
// same declaration across a pass without relying on pointer identity
// surviving into a text log line.
type SynthesizedMark struct {
	ID   uuid.UUID
	Name string
}

// Host resolves module specifiers against the file system, parsing and
// caching each file the first time it is reached. It is not safe for
// concurrent use from multiple goroutines without external synchronization
// beyond the Marks slice, which is itself guarded.
type Host struct {
	registry *extract.Registry

	mu    sync.Mutex
	Marks []SynthesizedMark
}

// New returns a Host backed by registry for unit memoization.
func New(registry *extract.Registry) *Host {
	return &Host{registry: registry}
}

// ResolveModule implements extract.Host: it resolves moduleSpecifier
// relative to fromPath's directory, trying the bare path, a ".ts" suffix,
// and an "index.ts" inside it, in that order — mirroring how a bundler's
// module resolution degrades from explicit file to package-style import.
func (h *Host) ResolveModule(fromPath, moduleSpecifier string) (*extract.Unit, bool) {
	resolved, ok := h.locate(fromPath, moduleSpecifier)
	if !ok {
		return nil, false
	}
	if u, found := h.registry.Get(resolved); found {
		return u, true
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, false
	}
	file := surfaceparse.Parse(resolved, string(data))
	unit := file.ToUnit()
	h.registry.Put(unit)
	return unit, true
}

func (h *Host) locate(fromPath, moduleSpecifier string) (string, bool) {
	dir := path.Dir(fromPath)
	base := path.Clean(path.Join(dir, moduleSpecifier))

	candidates := []string{base, base + ".ts", path.Join(base, "index.ts")}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// MarkSynthesized implements extract.Host.
func (h *Host) MarkSynthesized(declKey any) {
	name := "<anonymous>"
	if named, ok := declKey.(interface{ DeclName() string }); ok {
		name = named.DeclName()
	}
	h.mu.Lock()
	h.Marks = append(h.Marks, SynthesizedMark{ID: uuid.New(), Name: name})
	h.mu.Unlock()
}
