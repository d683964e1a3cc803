// Package decorate installs a type extractor's Packed output back into the
// emitted program text: a static `__type` member on a class, a
// post-assignment on a named function, or an Object.assign wrapper around an
// anonymous callable expression.
//
// Producing the emitted program itself — parsing the surface language and
// printing it back out — is the host compiler's job and explicitly out of
// scope here. This package instead works the way a source-to-source
// codemod does: it receives the already-rendered text of one declaration
// plus the byte offset needed to splice new text into it, and returns the
// modified text. The host is responsible for locating that text and offset
// in the first place.
package decorate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zgunz42/deepkit-framework/internal/diag"
	"github.com/zgunz42/deepkit-framework/internal/pack"
	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// Decorator installs Packed values into program text. It carries no state;
// a single instance may be shared across a whole pass.
type Decorator struct{}

// New returns a Decorator.
func New() *Decorator { return &Decorator{} }

// DecorateClass installs members as a static __type property on classSrc,
// the full text of one class declaration from the `class` keyword to its
// closing brace. If classSrc already declares __type, the class is returned
// unchanged alongside a RecoveredIdempotentDecoration note. If members
// is empty, the class is returned unchanged with no note — there is nothing
// to decorate, which is not a recoverable error.
func (d *Decorator) DecorateClass(classSrc string, members map[string]pack.Packed) (string, *diag.Note, bool) {
	if strings.Contains(classSrc, "__type") {
		note := diag.New(diag.RecoveredIdempotentDecoration, typeir.Position{}, "class already declares __type; decoration skipped", classSrc, "")
		return classSrc, &note, false
	}
	if len(members) == 0 {
		return classSrc, nil, false
	}

	closing := strings.LastIndexByte(classSrc, '}')
	if closing < 0 {
		note := diag.New(diag.RecoveredUnhandledNode, typeir.Position{}, "class source has no closing brace to decorate", classSrc, "")
		return classSrc, &note, false
	}

	var sb strings.Builder
	sb.WriteString(classSrc[:closing])
	sb.WriteString("  static __type = ")
	sb.WriteString(renderObject(members))
	sb.WriteString(";\n")
	sb.WriteString(classSrc[closing:])
	return sb.String(), nil, true
}

// DecorateFunction renders the post-assignment statement for a named
// function declaration: `name.__type = <packed>;`. The caller appends this
// after the function's own declaration text.
func (d *Decorator) DecorateFunction(name string, packed pack.Packed) string {
	return fmt.Sprintf("%s.__type = %s;", name, RenderPacked(packed))
}

// DecorateAnon wraps exprText — the text of an anonymous function or arrow
// expression — in an Object.assign call carrying its __type.
func (d *Decorator) DecorateAnon(exprText string, packed pack.Packed) string {
	return fmt.Sprintf("Object.assign(%s, { __type: %s })", exprText, RenderPacked(packed))
}

// renderObject renders members as a JS object-literal expression, in a
// stable, sorted key order so output is deterministic regardless of the
// member map's iteration order.
func renderObject(members map[string]pack.Packed) string {
	keys := make([]string, 0, len(members))
	for k := range members {
		keys = append(keys, k)
	}
	sortStrings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", strconv.Quote(k), RenderPacked(members[k])))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// RenderPacked renders a Packed value the way the decorator embeds it in
// program text: a bare quoted string for the scalar form, or a bracketed
// array of rendered literals followed by the quoted code string for the
// non-scalar form.
func RenderPacked(p pack.Packed) string {
	if p.IsScalar() {
		return strconv.Quote(p.Code)
	}
	parts := make([]string, 0, len(p.Literals)+1)
	for _, lit := range p.Literals {
		parts = append(parts, renderLiteral(lit))
	}
	parts = append(parts, strconv.Quote(p.Code))
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderLiteral(l pack.Literal) string {
	switch l.Kind {
	case pack.KindString, pack.KindPropertyName:
		return strconv.Quote(l.Str)
	case pack.KindNumber:
		return formatNumber(l.Num)
	case pack.KindBool:
		return strconv.FormatBool(l.Bool)
	case pack.KindLazyRef:
		// A zero-argument closure, not a bare identifier: evaluating the
		// class constructor or enum object eagerly here would force module
		// evaluation order at __type-install time, defeating the cycle
		// deferral a lazy reference exists to provide.
		return "() => " + l.Str
	default:
		return "null"
	}
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
