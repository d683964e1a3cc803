package surfaceparse

import (
	"fmt"
	"strings"

	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// RenderType renders a TypeNode back to surface syntax. It exists so the
// CLI can show a declaration's text after this package's lossy parse (no
// original source span is retained — see Parse) rather than needing the
// original file bytes on hand.
func RenderType(t typeir.TypeNode) string {
	if t == nil {
		return ""
	}
	switch n := t.(type) {
	case *typeir.ParenType:
		return "(" + RenderType(n.Inner) + ")"
	case *typeir.PrimitiveType:
		return renderPrimitive(n.Kind)
	case *typeir.ArrayType:
		return RenderType(n.Element) + "[]"
	case *typeir.UnionType:
		parts := make([]string, len(n.Members))
		for i, m := range n.Members {
			parts[i] = RenderType(m)
		}
		return strings.Join(parts, " | ")
	case *typeir.IntersectionType:
		parts := make([]string, len(n.Members))
		for i, m := range n.Members {
			parts[i] = RenderType(m)
		}
		return strings.Join(parts, " & ")
	case *typeir.LiteralTypeNode:
		switch n.Kind {
		case typeir.LiteralString:
			return fmt.Sprintf("%q", n.Str)
		case typeir.LiteralNumber:
			return formatNum(n.Num)
		case typeir.LiteralBoolean:
			return fmt.Sprintf("%v", n.Bool)
		default:
			return "null"
		}
	case *typeir.ObjectLiteralType:
		parts := make([]string, len(n.Members))
		for i, m := range n.Members {
			parts[i] = renderMember(m)
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	case *typeir.IndexSignatureType:
		key := "key: " + RenderType(n.KeyType)
		return "{ [" + key + "]: " + RenderType(n.ValueType) + " }"
	case *typeir.TypeReference:
		if len(n.TypeArgs) == 0 {
			return n.Name
		}
		parts := make([]string, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			parts[i] = RenderType(a)
		}
		return n.Name + "<" + strings.Join(parts, ", ") + ">"
	case *typeir.BuiltinRef:
		return "builtin"
	case *typeir.UnhandledType:
		return "any /* " + n.Description + " */"
	default:
		return "any"
	}
}

func renderMember(m typeir.Member) string {
	switch mm := m.(type) {
	case *typeir.PropertySignature:
		opt := ""
		if mm.Optional {
			opt = "?"
		}
		return fmt.Sprintf("%s%s: %s", mm.Name, opt, RenderType(mm.Type))
	case *typeir.MethodSignature:
		return fmt.Sprintf("%s(%s): %s", mm.Name, renderParams(mm.Parameters), RenderType(mm.ReturnType))
	default:
		return "?"
	}
}

func renderParams(params []*typeir.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, RenderType(p.Type))
	}
	return strings.Join(parts, ", ")
}

func renderPrimitive(k typeir.Primitive) string {
	switch k {
	case typeir.PrimitiveString:
		return "string"
	case typeir.PrimitiveNumber:
		return "number"
	case typeir.PrimitiveBoolean:
		return "boolean"
	case typeir.PrimitiveBigInt:
		return "bigint"
	case typeir.PrimitiveVoid:
		return "void"
	case typeir.PrimitiveNull:
		return "null"
	case typeir.PrimitiveUndefined:
		return "undefined"
	default:
		return "any"
	}
}

func formatNum(n float64) string {
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%f", n), "0"), ".")
}

// RenderClassSkeleton reconstructs class source text good enough to
// decorate: field and method signatures in declaration order, bodies
// omitted (this package never parses bodies — see Parse).
func RenderClassSkeleton(c *typeir.ClassDecl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "class %s {\n", c.Name)
	if c.Constructor != nil {
		fmt.Fprintf(&sb, "  constructor(%s) {}\n", renderParams(c.Constructor.Parameters))
	}
	for _, f := range c.Fields {
		opt := ""
		if f.Optional {
			opt = "?"
		}
		fmt.Fprintf(&sb, "  %s%s: %s;\n", f.Name, opt, RenderType(f.Type))
	}
	for _, m := range c.Methods {
		fmt.Fprintf(&sb, "  %s(%s): %s {}\n", m.Name, renderParams(m.Parameters), RenderType(m.ReturnType))
	}
	sb.WriteString("}")
	return sb.String()
}

// RenderFunctionSkeleton reconstructs a function declaration's signature
// line, body omitted.
func RenderFunctionSkeleton(f *typeir.FunctionDecl) string {
	return fmt.Sprintf("function %s(%s): %s {}", f.Name, renderParams(f.Parameters), RenderType(f.ReturnType))
}
