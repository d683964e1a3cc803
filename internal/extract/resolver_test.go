package extract

import (
	"testing"

	"github.com/zgunz42/deepkit-framework/internal/oracle"
	"github.com/zgunz42/deepkit-framework/internal/opcode"
	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// fakeHost is an in-memory Host: units are pre-registered by path, module
// specifiers resolve by exact string match (no path-joining semantics — the
// real host owns that).
type fakeHost struct {
	units       map[string]*Unit
	synthesized []any
}

func newFakeHost(units ...*Unit) *fakeHost {
	h := &fakeHost{units: make(map[string]*Unit)}
	for _, u := range units {
		h.units[u.Path] = u
	}
	return h
}

func (h *fakeHost) ResolveModule(fromPath, moduleSpecifier string) (*Unit, bool) {
	u, ok := h.units[moduleSpecifier]
	return u, ok
}

func (h *fakeHost) MarkSynthesized(declKey any) {
	h.synthesized = append(h.synthesized, declKey)
}

func newTestExtractor(host Host) *Extractor {
	return NewExtractor(NewResolver(host), alwaysOracle())
}

func alwaysOracle() *oracle.Oracle {
	o := oracle.New(nil)
	o.SetSessionOverride(oracle.Always)
	return o
}

// nilOracle has no probe and no override, so it always resolves to Never —
// used to test the Oracle-suppression path on extraction entry points.
func nilOracle() *oracle.Oracle {
	return oracle.New(nil)
}

func TestResolveBuiltinDate(t *testing.T) {
	host := newFakeHost()
	x := newTestExtractor(host)
	unit := NewUnit("a.ts")
	e := NewEmitter()
	ok := x.ExtractType(e, unit, &typeir.TypeReference{Name: "Date"})
	if !ok || !opsEqual(e.Ops, opcode.OpDate) {
		t.Fatalf("ops = %v, ok = %v", e.Ops, ok)
	}
}

func TestResolvePromiseBuiltinWithTypeArg(t *testing.T) {
	host := newFakeHost()
	x := newTestExtractor(host)
	unit := NewUnit("a.ts")
	e := NewEmitter()
	ref := &typeir.TypeReference{Name: "Promise", TypeArgs: []typeir.TypeNode{&typeir.PrimitiveType{Kind: typeir.PrimitiveString}}}
	ok := x.ExtractType(e, unit, ref)
	if !ok || !opsEqual(e.Ops, opcode.OpString, opcode.OpPromise) {
		t.Fatalf("ops = %v, ok = %v", e.Ops, ok)
	}
}

func TestResolveTypedArrayFamily(t *testing.T) {
	host := newFakeHost()
	x := newTestExtractor(host)
	unit := NewUnit("a.ts")
	for _, name := range []string{"Uint8Array", "Float64Array", "BigInt64Array"} {
		e := NewEmitter()
		ok := x.ExtractType(e, unit, &typeir.TypeReference{Name: name})
		if !ok || !opsEqual(e.Ops, opcode.OpTypedArray) {
			t.Errorf("%s: ops = %v, ok = %v", name, e.Ops, ok)
		}
	}
}

func TestResolveUnknownReferenceFallsBackToAny(t *testing.T) {
	host := newFakeHost()
	x := newTestExtractor(host)
	unit := NewUnit("a.ts")
	e := NewEmitter()
	ok := x.ExtractType(e, unit, &typeir.TypeReference{Name: "Nope"})
	if !ok || !opsEqual(e.Ops, opcode.OpAny) {
		t.Fatalf("ops = %v, ok = %v", e.Ops, ok)
	}
}

func TestResolveTypeAliasUnwraps(t *testing.T) {
	unit := NewUnit("a.ts")
	unit.Declared["ID"] = &typeir.TypeAliasDecl{Name: "ID", RHS: &typeir.PrimitiveType{Kind: typeir.PrimitiveString}}
	host := newFakeHost(unit)
	x := newTestExtractor(host)
	e := NewEmitter()
	ok := x.ExtractType(e, unit, &typeir.TypeReference{Name: "ID"})
	if !ok || !opsEqual(e.Ops, opcode.OpString) {
		t.Fatalf("ops = %v, ok = %v", e.Ops, ok)
	}
}

func TestResolveMappedTypeIsSuppressed(t *testing.T) {
	unit := NewUnit("a.ts")
	unit.Declared["Partial"] = &typeir.MappedTypeDecl{Name: "Partial"}
	host := newFakeHost(unit)
	x := newTestExtractor(host)
	e := NewEmitter()
	ok := x.ExtractType(e, unit, &typeir.TypeReference{Name: "Partial"})
	if ok {
		t.Fatalf("expected suppression, got ok=true ops=%v", e.Ops)
	}
	if len(e.Ops) != 0 {
		t.Errorf("suppressed reference must emit nothing, got %v", e.Ops)
	}
}

func TestResolveClassReferenceAcrossFilesMarksSynthesized(t *testing.T) {
	modelUnit := NewUnit("./model")
	modelDecl := &typeir.ClassDecl{Name: "Model"}
	modelUnit.Declared["Model"] = modelDecl

	appUnit := NewUnit("app.ts")
	appUnit.Imports["Model"] = ImportRef{Module: "./model", ImportedName: "Model"}

	host := newFakeHost(modelUnit, appUnit)
	x := newTestExtractor(host)

	e := NewEmitter()
	field := &typeir.ArrayType{Element: &typeir.TypeReference{Name: "Model"}}
	ok := x.ExtractType(e, appUnit, field)
	if !ok {
		t.Fatal("expected success")
	}
	if !opsEqual(e.Ops, opcode.OpClass, 0, opcode.OpArray) {
		t.Fatalf("ops = %v", e.Ops)
	}
	if e.Stack.Len() != 1 || e.Stack.Entries()[0].RefKey != modelDecl {
		t.Fatalf("expected one lazy ref to modelDecl, got %+v", e.Stack.Entries())
	}
	if len(host.synthesized) != 1 || host.synthesized[0] != modelDecl {
		t.Fatalf("expected MarkSynthesized(modelDecl), got %v", host.synthesized)
	}
}

func TestResolveLocalClassReferenceDoesNotMarkSynthesized(t *testing.T) {
	unit := NewUnit("a.ts")
	decl := &typeir.ClassDecl{Name: "Local"}
	unit.Declared["Local"] = decl
	host := newFakeHost(unit)
	x := newTestExtractor(host)
	e := NewEmitter()
	x.ExtractType(e, unit, &typeir.TypeReference{Name: "Local"})
	if len(host.synthesized) != 0 {
		t.Errorf("local reference should not mark anything synthesized, got %v", host.synthesized)
	}
}

func TestResolveConstEnumUsesConstEnumOpcode(t *testing.T) {
	unit := NewUnit("a.ts")
	decl := &typeir.EnumDecl{Name: "Color", IsConst: true}
	unit.Declared["Color"] = decl
	host := newFakeHost(unit)
	x := newTestExtractor(host)
	e := NewEmitter()
	x.ExtractType(e, unit, &typeir.TypeReference{Name: "Color"})
	if !opsEqual(e.Ops, opcode.OpConstEnum, 0) {
		t.Fatalf("ops = %v", e.Ops)
	}
}

// TestFindExportFollowsRenamedReExportWithOriginalSoughtName exercises the
// fix described in REDESIGN FLAGS: resolving an import of a re-exported,
// renamed symbol must look up the symbol's *original* name in the module it
// actually came from, not a name fixed at the call site.
func TestFindExportFollowsRenamedReExportWithOriginalSoughtName(t *testing.T) {
	fooUnit := NewUnit("./foo")
	fooDecl := &typeir.TypeAliasDecl{Name: "Foo", RHS: &typeir.PrimitiveType{Kind: typeir.PrimitiveNumber}}
	fooUnit.Declared["Foo"] = fooDecl

	indexUnit := NewUnit("./index")
	indexUnit.ReExports = []ReExport{{Name: "Foo", As: "Bar", From: "./foo"}}

	consumerUnit := NewUnit("consumer.ts")
	consumerUnit.Imports["Bar"] = ImportRef{Module: "./index", ImportedName: "Bar"}

	host := newFakeHost(fooUnit, indexUnit, consumerUnit)
	x := newTestExtractor(host)

	e := NewEmitter()
	ok := x.ExtractType(e, consumerUnit, &typeir.TypeReference{Name: "Bar"})
	if !ok || !opsEqual(e.Ops, opcode.OpNumber) {
		t.Fatalf("ops = %v, ok = %v; renamed re-export resolution is broken", e.Ops, ok)
	}
}

func TestFindExportFollowsStarReExport(t *testing.T) {
	implUnit := NewUnit("./impl")
	implUnit.Declared["Widget"] = &typeir.TypeAliasDecl{Name: "Widget", RHS: &typeir.PrimitiveType{Kind: typeir.PrimitiveBoolean}}

	barrelUnit := NewUnit("./barrel")
	barrelUnit.ReExportStars = []string{"./impl"}

	consumerUnit := NewUnit("consumer.ts")
	consumerUnit.Imports["Widget"] = ImportRef{Module: "./barrel", ImportedName: "Widget"}

	host := newFakeHost(implUnit, barrelUnit, consumerUnit)
	x := newTestExtractor(host)

	e := NewEmitter()
	ok := x.ExtractType(e, consumerUnit, &typeir.TypeReference{Name: "Widget"})
	if !ok || !opsEqual(e.Ops, opcode.OpBoolean) {
		t.Fatalf("ops = %v, ok = %v", e.Ops, ok)
	}
}

func TestFindExportCycleDoesNotInfiniteLoop(t *testing.T) {
	a := NewUnit("./a")
	a.ReExportStars = []string{"./b"}
	b := NewUnit("./b")
	b.ReExportStars = []string{"./a"}

	consumer := NewUnit("consumer.ts")
	consumer.Imports["X"] = ImportRef{Module: "./a", ImportedName: "X"}

	host := newFakeHost(a, b, consumer)
	x := newTestExtractor(host)

	e := NewEmitter()
	ok := x.ExtractType(e, consumer, &typeir.TypeReference{Name: "X"})
	if !ok || !opsEqual(e.Ops, opcode.OpAny) {
		t.Fatalf("expected Any fallback for unresolved cyclic export, got ops=%v ok=%v", e.Ops, ok)
	}
}

func TestResolveUnresolvableImportTargetFallsBackToAny(t *testing.T) {
	consumer := NewUnit("consumer.ts")
	consumer.Imports["Ghost"] = ImportRef{Module: "./missing", ImportedName: "Ghost"}
	host := newFakeHost(consumer)
	x := newTestExtractor(host)

	e := NewEmitter()
	ok := x.ExtractType(e, consumer, &typeir.TypeReference{Name: "Ghost"})
	if !ok || !opsEqual(e.Ops, opcode.OpAny) {
		t.Fatalf("ops = %v, ok = %v", e.Ops, ok)
	}
}

// opsEqual compares an opcode.OpCode slice against a variadic list of
// opcode.OpCode / int values for terse test assertions.
func opsEqual(got []opcode.OpCode, want ...any) bool {
	if len(got) != len(want) {
		return false
	}
	for i, w := range want {
		var wc opcode.OpCode
		switch v := w.(type) {
		case opcode.OpCode:
			wc = v
		case int:
			wc = opcode.OpCode(v)
		default:
			return false
		}
		if got[i] != wc {
			return false
		}
	}
	return true
}
