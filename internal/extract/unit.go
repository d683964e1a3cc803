// Package extract implements the type extractor and the resolver it calls
// into for type references: two mutually-recursive halves kept in one
// package (mirroring the reference compiler's semantic analyzer, which
// likewise spreads one multi-pass analysis across many files of a single
// `semantic` package rather than splitting mutually-recursive concerns
// across packages).
package extract

import "github.com/zgunz42/deepkit-framework/internal/typeir"

// ImportRef is the information the resolver needs about a name that was
// imported into a unit rather than declared in it: the module it came from,
// and the name under which the source module exports it (supporting
// `import { X as Y }`).
type ImportRef struct {
	Module       string
	ImportedName string
}

// ReExport is one `export { Name [as As] } from 'From'` statement.
type ReExport struct {
	Name string
	As   string
	From string
}

// Unit is the resolver's view of one compilation unit (source file): its
// own declarations, the names it imports, and the re-export statements a
// downstream importer might need to traverse through to find something
// declared elsewhere. It stands in for "the referenced source file" the
// emit resolver exposes per the host compiler contract.
type Unit struct {
	Path string

	// Declared holds every type-bearing declaration made directly in this
	// unit, by name, regardless of whether it is exported.
	Declared map[string]typeir.Declaration

	// Imports maps a locally-bound name to the import that introduced it.
	Imports map[string]ImportRef

	// ReExports and ReExportStars capture `export {...} from 'm'` and
	// `export * from 'm'` respectively.
	ReExports     []ReExport
	ReExportStars []string
}

// NewUnit returns an empty Unit rooted at path.
func NewUnit(path string) *Unit {
	return &Unit{
		Path:     path,
		Declared: make(map[string]typeir.Declaration),
		Imports:  make(map[string]ImportRef),
	}
}

// Host is the subset of the host compiler contract the resolver
// consumes: following a module specifier to the unit it refers to, and
// flagging an import specifier as synthesized so the host's unused-import
// elision does not remove it.
type Host interface {
	// ResolveModule returns the Unit referenced by moduleSpecifier as seen
	// from fromPath.
	ResolveModule(fromPath, moduleSpecifier string) (*Unit, bool)

	// MarkSynthesized flags declKey's import specifier as used by
	// synthesized code, so it survives unused-import pruning even though
	// it is otherwise only referenced in a type position.
	MarkSynthesized(declKey any)
}

// Registry is the per-pass, per-instance memoized unit cache: each
// unit is resolved and kept alive for the duration of one pass, and never
// persists across passes.
type Registry struct {
	units map[string]*Unit
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]*Unit)}
}

// Get returns the cached unit for path, if any.
func (r *Registry) Get(path string) (*Unit, bool) {
	u, ok := r.units[path]
	return u, ok
}

// Put memoizes u under its own path.
func (r *Registry) Put(u *Unit) {
	r.units[u.Path] = u
}
