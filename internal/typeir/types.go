package typeir

// TypeNode is any node that denotes a type: a primitive keyword, an array,
// a union/tuple, a literal, an object-type-literal, a callable signature, an
// index signature, or a reference to a named declaration.
type TypeNode interface {
	typeNode()
	Pos() Position
}

// base embeds the position every node carries.
type base struct {
	Position Position
}

func (b base) Pos() Position { return b.Position }

// ParenType is a parenthesized type: `(T)`. The extractor unwraps it and
// recurses on Inner.
type ParenType struct {
	base
	Inner TypeNode
}

func (*ParenType) typeNode() {}

// Primitive enumerates the keyword primitive types the surface language
// exposes directly (as opposed to built-in nominal references like Date).
type Primitive int

const (
	PrimitiveString Primitive = iota
	PrimitiveNumber
	PrimitiveBoolean
	PrimitiveBigInt
	PrimitiveVoid
	PrimitiveNull
	PrimitiveUndefined
	PrimitiveAny
)

// PrimitiveType is a primitive keyword type node.
type PrimitiveType struct {
	base
	Kind Primitive
}

func (*PrimitiveType) typeNode() {}

// ArrayType is `ElementType[]`.
type ArrayType struct {
	base
	Element TypeNode
}

func (*ArrayType) typeNode() {}

// UnionType is a tuple of member types combined with `|`. Per the extractor
// contract a union of exactly one member degenerates to that member; a
// union of zero members degenerates to nothing at all — both of those
// degenerate forms are handled by the extractor, not by this node.
type UnionType struct {
	base
	Members []TypeNode
}

func (*UnionType) typeNode() {}

// IntersectionType is a tuple of member types combined with `&`.
type IntersectionType struct {
	base
	Members []TypeNode
}

func (*IntersectionType) typeNode() {}

// LiteralKind discriminates the literal-type flavors. NullLiteral is called
// out separately because the extractor maps it straight to OpNull rather
// than pushing anything onto the literal stack.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralNull
)

// LiteralTypeNode is a literal type such as `"active"`, `42`, `true`, or
// `null`.
type LiteralTypeNode struct {
	base
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

func (*LiteralTypeNode) typeNode() {}

// Member is one member of an object-type-literal or interface: either a
// property signature or a method signature.
type Member interface {
	memberNode()
	MemberName() string
	Pos() Position
}

// PropertySignature is `name: Type` (optionally `name?: Type`) inside an
// interface or object-type-literal.
type PropertySignature struct {
	base
	Name     string
	Type     TypeNode
	Optional bool
}

func (*PropertySignature) memberNode()        {}
func (p *PropertySignature) MemberName() string { return p.Name }

// MethodSignature is a method declared inside an interface or
// object-type-literal: `name(params): ReturnType`.
type MethodSignature struct {
	base
	Name       string
	Parameters []*Parameter
	ReturnType TypeNode // nil means no explicit annotation
}

func (*MethodSignature) memberNode()          {}
func (m *MethodSignature) MemberName() string { return m.Name }

// ObjectLiteralType is an inline object-type-literal or a resolved
// interface's flattened member set (including inherited members — see
// Resolver). Members appear in emission order: own members first, then
// inherited members not shadowed by an own member.
type ObjectLiteralType struct {
	base
	Members []Member
}

func (*ObjectLiteralType) typeNode() {}

// IndexSignatureType is `{ [key: K]: V }`.
type IndexSignatureType struct {
	base
	KeyType   TypeNode // nil means implicit any
	ValueType TypeNode
}

func (*IndexSignatureType) typeNode() {}

// Parameter is one parameter of a callable type node.
type Parameter struct {
	Name string
	Type TypeNode // nil means no type annotation
}

// CallableKind distinguishes the three callable flavors the extractor
// treats slightly differently (methods carry modifiers; functions don't;
// constructors have no return type).
type CallableKind int

const (
	CallableFunction CallableKind = iota
	CallableMethod
	CallableConstructor
)

// CallableType is a function/method/constructor signature, whether it comes
// from a declaration, an arrow expression, or a function expression.
type CallableType struct {
	base
	Kind       CallableKind
	Parameters []*Parameter
	ReturnType TypeNode // nil means no explicit return annotation

	Optional   bool
	Private    bool
	Protected  bool
	Abstract   bool
}

func (*CallableType) typeNode() {}

// BuiltinKind identifies which built-in nominal type a BuiltinRef names.
type BuiltinKind int

const (
	BuiltinDate BuiltinKind = iota
	BuiltinArrayBuffer
	BuiltinTypedArray
	BuiltinPromise
)

// BuiltinRef is a reference to a known built-in nominal type the resolver
// recognizes by name without consulting the type checker: Date,
// ArrayBuffer, one of the typed-array family, or Promise<T>.
type BuiltinRef struct {
	base
	Kind     BuiltinKind
	TypeArgs []TypeNode // Promise's single argument, when present
}

func (*BuiltinRef) typeNode() {}

// TypeReference is a reference to a named type: a type alias, an interface,
// a class, an enum, a generic parameter, or an unresolved identifier. The
// Resolver (package extract) is responsible for turning this into concrete
// opcodes.
type TypeReference struct {
	base
	Name     string
	TypeArgs []TypeNode
}

func (*TypeReference) typeNode() {}

// UnhandledType stands in for any AST shape the extractor does not
// recognize (mapped types, conditional types, query types, etc). It always
// emits OpAny.
type UnhandledType struct {
	base
	Description string
}

func (*UnhandledType) typeNode() {}

func NewPosition(p Position) base { return base{Position: p} }
