package extract

import (
	"github.com/zgunz42/deepkit-framework/internal/oracle"
	"github.com/zgunz42/deepkit-framework/internal/opcode"
	"github.com/zgunz42/deepkit-framework/internal/pack"
	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// Extractor walks a type-node tree and emits the opcode sequence the
// instruction set defines for each node shape, dispatching to a
// Resolver whenever it meets a TypeReference. A single Extractor is shared
// across a whole transform pass; its behavior depends only on its arguments,
// never on state accumulated from a previous call.
type Extractor struct {
	resolver *Resolver
	oracle   *oracle.Oracle
}

// NewExtractor returns an Extractor that consults resolver for type
// references and o for the per-declaration reflection-mode gate.
func NewExtractor(resolver *Resolver, o *oracle.Oracle) *Extractor {
	return &Extractor{resolver: resolver, oracle: o}
}

// ExtractType emits the opcodes for t into e. It returns false only when t
// must be suppressed entirely — that happens when t is (or contains,
// through an array or a wholly-suppressed union/intersection) a reference
// to a mapped type, the one declaration shape the resolver refuses to
// evaluate, a callable type with no parameters and no return type, or a
// union/intersection with no members. Every unresolvable shape falls back
// to OpAny and still returns true.
//
// Callers may rely on the invariant that a false return means e.Ops was left
// exactly as it was on entry: no node type here appends anything before
// discovering a child failure.
func (x *Extractor) ExtractType(e *Emitter, unit *Unit, t typeir.TypeNode) bool {
	switch n := t.(type) {
	case nil:
		e.Emit(opcode.OpAny)
		return true

	case *typeir.ParenType:
		return x.ExtractType(e, unit, n.Inner)

	case *typeir.PrimitiveType:
		e.Emit(primitiveOpcode(n.Kind))
		return true

	case *typeir.ArrayType:
		if !x.ExtractType(e, unit, n.Element) {
			return false
		}
		e.Emit(opcode.OpArray)
		return true

	case *typeir.UnionType:
		return x.extractCombinator(e, unit, n.Members, opcode.OpUnion)

	case *typeir.IntersectionType:
		return x.extractCombinator(e, unit, n.Members, opcode.OpIntersection)

	case *typeir.LiteralTypeNode:
		if n.Kind == typeir.LiteralNull {
			e.Emit(opcode.OpNull)
			return true
		}
		idx := e.Push(literalFor(n))
		e.EmitIndexed(opcode.OpLiteral, idx)
		return true

	case *typeir.ObjectLiteralType:
		return x.extractMembers(e, unit, n.Members)

	case *typeir.IndexSignatureType:
		x.extractOrAny(e, unit, n.KeyType)
		x.extractOrAny(e, unit, n.ValueType)
		e.Emit(opcode.OpIndexSignature)
		return true

	case *typeir.CallableType:
		return x.extractCallable(e, unit, n)

	case *typeir.BuiltinRef:
		return x.resolver.emitBuiltin(x, e, unit, n.Kind, n.TypeArgs)

	case *typeir.TypeReference:
		return x.resolver.ResolveTypeReference(x, e, unit, n)

	case *typeir.UnhandledType:
		e.Emit(opcode.OpAny)
		return true

	default:
		e.Emit(opcode.OpAny)
		return true
	}
}

// extractOrAny extracts t into e, substituting OpAny for a nil type or a
// suppressed (mapped-type) resolution. It is used everywhere a missing or
// suppressed type must not take down the declaration around it — callable,
// method and method-signature parameters and return types, index signature
// key/value types — as opposed to property signatures and fields, where a
// suppressed type omits the whole member instead (see
// extractPropertySignature, extractField).
func (x *Extractor) extractOrAny(e *Emitter, unit *Unit, t typeir.TypeNode) {
	if t == nil {
		e.Emit(opcode.OpAny)
		return
	}
	if !x.ExtractType(e, unit, t) {
		e.Emit(opcode.OpAny)
	}
}

// extractCombinator implements the union/intersection degenerate-arity rule:
// zero surviving members emits nothing (the combinator itself suppresses),
// exactly one emits that member bare, and two or more wrap with op.
//
// For a union specifically, if the accumulator already held instructions
// before this combinator started (i.e. this union is not the first thing
// emitted for the enclosing member), those instructions would otherwise
// bleed into the reader's frame and get consumed by this union's own
// `union` opcode. A leading `frame` opens a fresh scope boundary so `union`
// only consumes what this combinator itself pushed.
func (x *Extractor) extractCombinator(e *Emitter, unit *Unit, members []typeir.TypeNode, op opcode.OpCode) bool {
	start := len(e.Ops)
	survivors := 0
	for _, m := range members {
		if x.ExtractType(e, unit, m) {
			survivors++
		}
	}
	switch {
	case survivors == 0:
		return false
	case survivors == 1:
		return true
	default:
		if op == opcode.OpUnion && start > 0 {
			rest := append([]opcode.OpCode{opcode.OpFrame}, e.Ops[start:]...)
			e.Ops = append(e.Ops[:start], rest...)
		}
		e.Emit(op)
		return true
	}
}

func (x *Extractor) extractCallable(e *Emitter, unit *Unit, n *typeir.CallableType) bool {
	if len(n.Parameters) == 0 && n.ReturnType == nil {
		return false
	}
	for _, p := range n.Parameters {
		x.extractOrAny(e, unit, p.Type)
	}
	x.extractOrAny(e, unit, n.ReturnType)

	switch n.Kind {
	case typeir.CallableConstructor:
		e.Emit(opcode.OpConstructor)
	case typeir.CallableMethod:
		e.Emit(opcode.OpMethod)
	default:
		e.Emit(opcode.OpFunction)
	}

	if n.Optional {
		e.Emit(opcode.OpOptional)
	}
	if n.Private {
		e.Emit(opcode.OpPrivate)
	}
	if n.Protected {
		e.Emit(opcode.OpProtected)
	}
	if n.Abstract {
		e.Emit(opcode.OpAbstract)
	}
	return true
}

// extractMembers emits an interface's or object-literal's flattened member
// list and always succeeds: an empty object literal is a valid type, not a
// suppression.
func (x *Extractor) extractMembers(e *Emitter, unit *Unit, members []typeir.Member) bool {
	for _, m := range members {
		switch mm := m.(type) {
		case *typeir.PropertySignature:
			x.extractPropertySignature(e, unit, mm)
		case *typeir.MethodSignature:
			x.extractMethodSignature(e, unit, mm)
		}
	}
	e.Emit(opcode.OpObjectLiteral)
	return true
}

func (x *Extractor) extractPropertySignature(e *Emitter, unit *Unit, p *typeir.PropertySignature) {
	if p.Type == nil {
		return
	}
	if !x.ExtractType(e, unit, p.Type) {
		return
	}
	idx := e.Push(pack.PropertyName(p.Name))
	e.EmitIndexed(opcode.OpPropertySignature, idx)
}

func (x *Extractor) extractMethodSignature(e *Emitter, unit *Unit, m *typeir.MethodSignature) {
	if len(m.Parameters) == 0 && m.ReturnType == nil {
		return
	}
	for _, p := range m.Parameters {
		x.extractOrAny(e, unit, p.Type)
	}
	x.extractOrAny(e, unit, m.ReturnType)
	idx := e.Push(pack.PropertyName(m.Name))
	e.EmitIndexed(opcode.OpMethodSignature, idx)
}

// flattenInterface resolves iface's Extends clauses and returns its members
// in emission order: own members first, then each ancestor's members (own
// members of the nearer ancestor first) with any name already seen dropped
// — the "child wins" dedup rule. visiting guards against an
// extends cycle a malformed program might contain.
func (x *Extractor) flattenInterface(unit *Unit, iface *typeir.InterfaceDecl, visiting map[string]bool) []typeir.Member {
	if visiting[iface.Name] {
		return nil
	}
	visiting[iface.Name] = true

	seen := make(map[string]bool, len(iface.Members))
	out := make([]typeir.Member, 0, len(iface.Members))
	for _, m := range iface.Members {
		if !seen[m.MemberName()] {
			out = append(out, m)
			seen[m.MemberName()] = true
		}
	}

	for _, parentName := range iface.Extends {
		decl, declUnit, _, ok := x.resolver.resolveDeclaration(unit, parentName)
		if !ok {
			continue
		}
		parent, ok := decl.(*typeir.InterfaceDecl)
		if !ok {
			continue
		}
		for _, m := range x.flattenInterface(declUnit, parent, visiting) {
			if !seen[m.MemberName()] {
				out = append(out, m)
				seen[m.MemberName()] = true
			}
		}
	}
	return out
}

// ClassPack holds one pack.Packed per class member that yielded anything —
// a member with no type annotation, or whose sole type is a suppressed
// mapped-type reference, contributes no entry and the decorator leaves it
// alone.
type ClassPack struct {
	Members map[string]pack.Packed
}

// ExtractClass extracts every field, method, and constructor of decl. It
// first consults the Oracle for decl's own doc tags; a Never mode drops the
// whole class with no Members at all, matching the per-declaration gate
// applied uniformly across declaration kinds.
func (x *Extractor) ExtractClass(unit *Unit, dir string, decl *typeir.ClassDecl) (ClassPack, bool) {
	if x.oracle.Resolve(decl.DocTags, dir).Suppressed() {
		return ClassPack{}, false
	}

	out := ClassPack{Members: make(map[string]pack.Packed)}

	for _, f := range decl.Fields {
		e := NewEmitter()
		if x.extractField(e, unit, f) {
			out.Members[f.Name] = e.Pack()
		}
	}
	for _, m := range decl.Methods {
		e := NewEmitter()
		if x.extractMethod(e, unit, m) {
			out.Members[m.Name] = e.Pack()
		}
	}
	if decl.Constructor != nil {
		e := NewEmitter()
		if x.extractMethod(e, unit, decl.Constructor) {
			out.Members["constructor"] = e.Pack()
		}
	}

	return out, len(out.Members) > 0
}

func (x *Extractor) extractField(e *Emitter, unit *Unit, f *typeir.FieldDecl) bool {
	if f.Type == nil {
		return false
	}
	if !x.ExtractType(e, unit, f.Type) {
		return false
	}
	if f.Optional {
		e.Emit(opcode.OpOptional)
	}
	if f.Private {
		e.Emit(opcode.OpPrivate)
	}
	if f.Protected {
		e.Emit(opcode.OpProtected)
	}
	if f.Abstract {
		e.Emit(opcode.OpAbstract)
	}
	e.Emit(opcode.OpProperty)
	return true
}

func (x *Extractor) extractMethod(e *Emitter, unit *Unit, m *typeir.MethodDecl) bool {
	if len(m.Parameters) == 0 && m.ReturnType == nil {
		return false
	}
	for _, p := range m.Parameters {
		x.extractOrAny(e, unit, p.Type)
	}
	if m.IsConstructor {
		e.Emit(opcode.OpConstructor)
	} else {
		x.extractOrAny(e, unit, m.ReturnType)
		e.Emit(opcode.OpMethod)
	}
	if m.Private {
		e.Emit(opcode.OpPrivate)
	}
	if m.Protected {
		e.Emit(opcode.OpProtected)
	}
	if m.Abstract {
		e.Emit(opcode.OpAbstract)
	}
	return true
}

// ExtractFunction extracts a named top-level function declaration. Per the
// callable contract, a function with zero parameters and no return
// annotation carries no type information worth packing at all.
func (x *Extractor) ExtractFunction(unit *Unit, dir string, decl *typeir.FunctionDecl) (pack.Packed, bool) {
	if x.oracle.Resolve(decl.DocTags, dir).Suppressed() {
		return pack.Packed{}, false
	}
	if len(decl.Parameters) == 0 && decl.ReturnType == nil {
		return pack.Packed{}, false
	}
	e := NewEmitter()
	for _, p := range decl.Parameters {
		x.extractOrAny(e, unit, p.Type)
	}
	x.extractOrAny(e, unit, decl.ReturnType)
	e.Emit(opcode.OpFunction)
	return e.Pack(), true
}

// ExtractAnon extracts an anonymous function or arrow expression assigned to
// a binding. It is decorated differently from a named function (wrapped via
// Object.assign rather than a post-assignment) but extracted identically.
func (x *Extractor) ExtractAnon(unit *Unit, dir string, decl *typeir.AnonCallableDecl) (pack.Packed, bool) {
	if x.oracle.Resolve(decl.DocTags, dir).Suppressed() {
		return pack.Packed{}, false
	}
	if len(decl.Parameters) == 0 && decl.ReturnType == nil {
		return pack.Packed{}, false
	}
	e := NewEmitter()
	for _, p := range decl.Parameters {
		x.extractOrAny(e, unit, p.Type)
	}
	x.extractOrAny(e, unit, decl.ReturnType)
	e.Emit(opcode.OpFunction)
	return e.Pack(), true
}

func primitiveOpcode(p typeir.Primitive) opcode.OpCode {
	switch p {
	case typeir.PrimitiveString:
		return opcode.OpString
	case typeir.PrimitiveNumber:
		return opcode.OpNumber
	case typeir.PrimitiveBoolean:
		return opcode.OpBoolean
	case typeir.PrimitiveBigInt:
		return opcode.OpBigInt
	case typeir.PrimitiveVoid:
		return opcode.OpVoid
	case typeir.PrimitiveNull:
		return opcode.OpNull
	case typeir.PrimitiveUndefined:
		return opcode.OpUndefined
	default:
		return opcode.OpAny
	}
}

func literalFor(n *typeir.LiteralTypeNode) pack.Literal {
	switch n.Kind {
	case typeir.LiteralString:
		return pack.String(n.Str)
	case typeir.LiteralNumber:
		return pack.Number(n.Num)
	case typeir.LiteralBoolean:
		return pack.Bool(n.Bool)
	default:
		return pack.String("")
	}
}
