// Package typeir defines the surface-language AST node shapes the type
// extractor walks: type expressions and the declarations that carry them
// (classes, interfaces, enums, functions). These mirror the slice of a host
// compiler's own AST that the transformer needs — they are not a general
// parser target, and the host compiler's parsing and emission are explicitly
// out of scope for this package.
package typeir

// Position is a source location, carried for diagnostics only.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return ""
	}
	return p.File
}
