package extract

import (
	"github.com/zgunz42/deepkit-framework/internal/opcode"
	"github.com/zgunz42/deepkit-framework/internal/pack"
	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// Resolver turns a TypeReference into concrete opcodes by asking the host
// (standing in for the host compiler's type checker) to follow imports,
// re-exports, and type aliases back to a concrete declaration.
type Resolver struct {
	host Host
}

// NewResolver returns a Resolver backed by host.
func NewResolver(host Host) *Resolver {
	return &Resolver{host: host}
}

// ResolveTypeReference dispatches ref: built-ins first, then declaration
// lookup through unit. It returns false only when the reference resolves to
// something the extractor must suppress entirely (a mapped type) — every
// other outcome, including a reference that could not be resolved at all,
// emits OpAny and returns true, per the conservative Any-fallback policy.
func (r *Resolver) ResolveTypeReference(x *Extractor, e *Emitter, unit *Unit, ref *typeir.TypeReference) bool {
	if kind, ok := lookupBuiltin(ref.Name); ok {
		return r.emitBuiltin(x, e, unit, kind, ref.TypeArgs)
	}

	decl, declUnit, imported, ok := r.resolveDeclaration(unit, ref.Name)
	if !ok {
		e.Emit(opcode.OpAny)
		return true
	}

	switch d := decl.(type) {
	case *typeir.TypeAliasDecl:
		return x.ExtractType(e, declUnit, d.RHS)

	case *typeir.MappedTypeDecl:
		// Mapped types are not evaluated. A property signature or field
		// caller omits the member; a callable parameter or return type
		// falls back to OpAny (see extractOrAny).
		return false

	case *typeir.EnumDecl:
		if imported {
			r.host.MarkSynthesized(d)
		}
		idx := e.Push(pack.LazyRef(localRefName(ref, imported, d.Name), d))
		if d.IsConst {
			e.EmitIndexed(opcode.OpConstEnum, idx)
		} else {
			e.EmitIndexed(opcode.OpEnum, idx)
		}
		return true

	case *typeir.ClassDecl:
		if imported {
			r.host.MarkSynthesized(d)
		}
		for _, arg := range ref.TypeArgs {
			x.ExtractType(e, unit, arg)
		}
		idx := e.Push(pack.LazyRef(localRefName(ref, imported, d.Name), d))
		e.EmitIndexed(opcode.OpClass, idx)
		return true

	case *typeir.InterfaceDecl:
		members := x.flattenInterface(declUnit, d, map[string]bool{})
		return x.extractMembers(e, declUnit, members)

	default:
		// No other declaration kind denotes a type in this surface
		// language's grammar; recovered as Any rather than a panic.
		e.Emit(opcode.OpAny)
		return true
	}
}

// localRefName picks the identifier the decorator should embed for a
// resolved class/enum reference: the name as written at the reference site
// when it came from an import (which is already bound in this file's
// scope, renamed or not — `import { Model as M }` means `M` is what
// resolves, not the origin declaration's own name), or the declaration's
// own name for a same-file reference.
func localRefName(ref *typeir.TypeReference, imported bool, declName string) string {
	if imported {
		return ref.Name
	}
	return declName
}

func (r *Resolver) emitBuiltin(x *Extractor, e *Emitter, unit *Unit, kind typeir.BuiltinKind, typeArgs []typeir.TypeNode) bool {
	switch kind {
	case typeir.BuiltinPromise:
		if len(typeArgs) > 0 {
			if !x.ExtractType(e, unit, typeArgs[0]) {
				e.Emit(opcode.OpAny)
			}
		} else {
			e.Emit(opcode.OpAny)
		}
		e.Emit(opcode.OpPromise)
	case typeir.BuiltinDate:
		e.Emit(opcode.OpDate)
	case typeir.BuiltinArrayBuffer:
		e.Emit(opcode.OpArrayBuffer)
	case typeir.BuiltinTypedArray:
		e.Emit(opcode.OpTypedArray)
	}
	return true
}

// resolveDeclaration looks up name against unit: first — if unit imported
// the name — by following the import to the module it came from and
// searching that module's exports, otherwise as a locally declared
// symbol. imported
// reports which of the two happened, since only imported references need
// their specifier marked synthesized.
func (r *Resolver) resolveDeclaration(unit *Unit, name string) (decl typeir.Declaration, declUnit *Unit, imported bool, ok bool) {
	if imp, isImport := unit.Imports[name]; isImport {
		target, ok2 := r.host.ResolveModule(unit.Path, imp.Module)
		if !ok2 {
			return nil, nil, true, false
		}
		d, ok3 := r.findExport(target, imp.ImportedName, map[string]bool{})
		return d, target, true, ok3
	}
	if d, ok2 := unit.Declared[name]; ok2 {
		return d, unit, false, true
	}
	return nil, nil, false, false
}

// findExport searches unit for a declaration reachable under name: declared
// directly, or reachable by following `export {...} from` and
// `export * from` re-exports. visited guards against re-export cycles.
//
// The original extractor probed re-exports for a literal name, "Message",
// left over from the declaration it was first tested against — so any
// import of a symbol re-exported under a different name resolved to the
// wrong declaration, or to nothing. findExport always carries the name it
// was actually asked to find down through every recursive call.
func (r *Resolver) findExport(unit *Unit, name string, visited map[string]bool) (typeir.Declaration, bool) {
	if visited[unit.Path] {
		return nil, false
	}
	visited[unit.Path] = true

	if d, ok := unit.Declared[name]; ok {
		return d, true
	}

	for _, re := range unit.ReExports {
		var sought string
		switch {
		case re.As != "" && re.As == name:
			sought = re.Name
		case re.As == "" && re.Name == name:
			sought = re.Name
		default:
			continue
		}
		target, ok := r.host.ResolveModule(unit.Path, re.From)
		if !ok {
			continue
		}
		if d, ok := r.findExport(target, sought, visited); ok {
			return d, true
		}
	}

	for _, star := range unit.ReExportStars {
		target, ok := r.host.ResolveModule(unit.Path, star)
		if !ok {
			continue
		}
		if d, ok := r.findExport(target, name, visited); ok {
			return d, true
		}
	}

	return nil, false
}
