// Package transform ties the instruction set, packer, extractor, resolver,
// oracle, and decorator together into the single pass a host compiler plugin
// runs once per emitted file: for each declaration, extract its type
// information (gated by the Oracle), pack it, and hand the packed form to
// the Decorator to splice into the file's output text.
//
// This mirrors the reference compiler's pass-manager shape (one Pipeline per
// compilation, many independent per-declaration steps accumulating
// diagnostics rather than aborting on the first recoverable problem) without
// adopting its multi-pass ordering machinery — a type-reflection transform
// runs exactly once per file, so there is only one pass to manage.
package transform

import (
	"github.com/zgunz42/deepkit-framework/internal/decorate"
	"github.com/zgunz42/deepkit-framework/internal/diag"
	"github.com/zgunz42/deepkit-framework/internal/extract"
	"github.com/zgunz42/deepkit-framework/internal/oracle"
	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// Pipeline is the entry point a host compiler plugin drives once per file.
type Pipeline struct {
	Registry  *extract.Registry
	Resolver  *extract.Resolver
	Extractor *extract.Extractor
	Decorator *decorate.Decorator
	Oracle    *oracle.Oracle

	Notes []diag.Note
}

// New builds a Pipeline wired against host, the caller's implementation of
// the module-resolution and import-preservation contract. probe, if
// non-nil, backs the Oracle's hierarchical configuration lookup.
func New(host extract.Host, probe oracle.ConfigProbe) *Pipeline {
	o := oracle.New(probe)
	resolver := extract.NewResolver(host)
	return &Pipeline{
		Registry:  extract.NewRegistry(),
		Resolver:  resolver,
		Extractor: extract.NewExtractor(resolver, o),
		Decorator: decorate.New(),
		Oracle:    o,
	}
}

func (p *Pipeline) note(n *diag.Note) {
	if n != nil {
		p.Notes = append(p.Notes, *n)
	}
}

// TransformClass extracts decl's members and, if any were produced, installs
// a static __type property into classSrc (the full text of the class
// declaration, `class` through closing brace). It returns classSrc unchanged
// when there is nothing to decorate — no members, gated off by the Oracle,
// or already decorated.
func (p *Pipeline) TransformClass(unit *extract.Unit, dir string, decl *typeir.ClassDecl, classSrc string) string {
	cp, ok := p.Extractor.ExtractClass(unit, dir, decl)
	if !ok {
		return classSrc
	}
	out, note, _ := p.Decorator.DecorateClass(classSrc, cp.Members)
	p.note(note)
	return out
}

// TransformFunction extracts decl and, on success, returns the post-
// assignment statement the caller should append after the function
// declaration's own text. ok is false when there is nothing to emit.
func (p *Pipeline) TransformFunction(unit *extract.Unit, dir string, decl *typeir.FunctionDecl) (stmt string, ok bool) {
	packed, extracted := p.Extractor.ExtractFunction(unit, dir, decl)
	if !extracted {
		return "", false
	}
	return p.Decorator.DecorateFunction(decl.Name, packed), true
}

// TransformAnon extracts decl and, on success, returns exprText rewritten as
// an Object.assign wrapper carrying its __type. ok is false when there is
// nothing to emit, in which case the caller should leave exprText as-is.
func (p *Pipeline) TransformAnon(unit *extract.Unit, dir string, decl *typeir.AnonCallableDecl, exprText string) (wrapped string, ok bool) {
	packed, extracted := p.Extractor.ExtractAnon(unit, dir, decl)
	if !extracted {
		return exprText, false
	}
	return p.Decorator.DecorateAnon(exprText, packed), true
}
