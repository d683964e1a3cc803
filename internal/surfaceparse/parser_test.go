package surfaceparse

import (
	"testing"

	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

func TestParseClassWithPrimitiveFields(t *testing.T) {
	src := `
class Book {
  title: string;
  pages: number;
  private secret: boolean;
}
`
	f := Parse("book.ts", src)
	if len(f.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(f.Classes))
	}
	c := f.Classes[0]
	if c.Name != "Book" || len(c.Fields) != 3 {
		t.Fatalf("got name=%q fields=%d", c.Name, len(c.Fields))
	}
	if c.Fields[0].Name != "title" {
		t.Errorf("field[0] = %q", c.Fields[0].Name)
	}
	if _, ok := c.Fields[0].Type.(*typeir.PrimitiveType); !ok {
		t.Errorf("expected primitive type for title, got %T", c.Fields[0].Type)
	}
	if !c.Fields[2].Private {
		t.Error("expected secret field to be private")
	}
}

func TestParseClassWithConstructorAndMethod(t *testing.T) {
	src := `
class Greeter {
  constructor(name: string) {
    this.name = name;
  }
  greet(times: number): string {
    return "hi";
  }
}
`
	f := Parse("greeter.ts", src)
	c := f.Classes[0]
	if c.Constructor == nil || len(c.Constructor.Parameters) != 1 {
		t.Fatalf("expected constructor with 1 param, got %+v", c.Constructor)
	}
	if len(c.Methods) != 1 || c.Methods[0].Name != "greet" {
		t.Fatalf("expected method greet, got %+v", c.Methods)
	}
	if _, ok := c.Methods[0].ReturnType.(*typeir.PrimitiveType); !ok {
		t.Errorf("expected primitive return type, got %T", c.Methods[0].ReturnType)
	}
}

func TestParseInterfaceWithExtendsAndOptionalMember(t *testing.T) {
	src := `
interface Named {
  name: string;
}
interface Greeting extends Named {
  message?: string;
  reply(text: string): void;
}
`
	f := Parse("greeting.ts", src)
	if len(f.Interfaces) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(f.Interfaces))
	}
	g := f.Interfaces[1]
	if len(g.Extends) != 1 || g.Extends[0] != "Named" {
		t.Fatalf("expected extends [Named], got %v", g.Extends)
	}
	if len(g.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(g.Members))
	}
	prop, ok := g.Members[0].(*typeir.PropertySignature)
	if !ok || !prop.Optional {
		t.Fatalf("expected optional property signature, got %+v", g.Members[0])
	}
	if _, ok := g.Members[1].(*typeir.MethodSignature); !ok {
		t.Fatalf("expected method signature, got %T", g.Members[1])
	}
}

func TestParseFunctionWithUnionAndArrayTypes(t *testing.T) {
	src := `
function parse(input: string | number, tags: string[]): boolean {
  return true;
}
`
	f := Parse("parse.ts", src)
	if len(f.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(f.Functions))
	}
	fn := f.Functions[0]
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Parameters))
	}
	if _, ok := fn.Parameters[0].Type.(*typeir.UnionType); !ok {
		t.Errorf("expected union type for input, got %T", fn.Parameters[0].Type)
	}
	if _, ok := fn.Parameters[1].Type.(*typeir.ArrayType); !ok {
		t.Errorf("expected array type for tags, got %T", fn.Parameters[1].Type)
	}
}

func TestParseTypeAliasWithObjectLiteralAndIndexSignature(t *testing.T) {
	src := `
type Config = {
  enabled: boolean;
  [key: string]: any;
};
`
	f := Parse("config.ts", src)
	if len(f.TypeAliases) != 1 {
		t.Fatalf("expected 1 type alias, got %d", len(f.TypeAliases))
	}
	_, ok := f.TypeAliases[0].RHS.(*typeir.ObjectLiteralType)
	if !ok {
		t.Fatalf("expected object literal type, got %T", f.TypeAliases[0].RHS)
	}
}

func TestParseImportAndReExport(t *testing.T) {
	src := `
import { Foo as Bar } from './foo';
export { Bar as Baz } from './index';
export * from './other';
`
	f := Parse("unit.ts", src)
	if len(f.Imports) != 1 || f.Imports[0].Module != "./foo" {
		t.Fatalf("got imports %+v", f.Imports)
	}
	if f.Imports[0].Specifiers[0].Imported != "Foo" || f.Imports[0].Specifiers[0].Local != "Bar" {
		t.Fatalf("got specifier %+v", f.Imports[0].Specifiers[0])
	}
	if len(f.ReExports) != 1 || f.ReExports[0].Module != "./index" {
		t.Fatalf("got re-exports %+v", f.ReExports)
	}
	if f.ReExports[0].Specifiers[0].Exported != "Bar" || f.ReExports[0].Specifiers[0].As != "Baz" {
		t.Fatalf("got re-export spec %+v", f.ReExports[0].Specifiers[0])
	}
	if len(f.ReExportStars) != 1 || f.ReExportStars[0] != "./other" {
		t.Fatalf("got star re-exports %v", f.ReExportStars)
	}
}

func TestToUnitWiresImportsAndReExports(t *testing.T) {
	src := `
import { Foo as Bar } from './foo';
export { Bar as Baz } from './index';
class Widget {
  label: string;
}
`
	f := Parse("unit.ts", src)
	u := f.ToUnit()
	if u.Path != "unit.ts" {
		t.Errorf("path = %q", u.Path)
	}
	if _, ok := u.Declared["Widget"]; !ok {
		t.Error("expected Widget in Declared")
	}
	if imp, ok := u.Imports["Bar"]; !ok || imp.Module != "./foo" || imp.ImportedName != "Foo" {
		t.Errorf("got import %+v", imp)
	}
	if len(u.ReExports) != 1 || u.ReExports[0].Name != "Bar" || u.ReExports[0].As != "Baz" || u.ReExports[0].From != "./index" {
		t.Errorf("got re-export %+v", u.ReExports)
	}
}

func TestParseUnrecognizedTopLevelConstructIsSkippedNotFatal(t *testing.T) {
	src := `
const x = 1;
class Ok {
  n: number;
}
`
	f := Parse("mixed.ts", src)
	if len(f.Classes) != 1 || f.Classes[0].Name != "Ok" {
		t.Fatalf("expected parsing to continue past unrecognized statement, got %+v", f.Classes)
	}
	if len(f.Notes) == 0 {
		t.Error("expected a recovered note for the skipped const statement")
	}
}
