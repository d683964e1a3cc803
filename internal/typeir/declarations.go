package typeir

// Declaration is any top-level or nested construct the transformer may need
// to reflect over or resolve through: a class, a function, an interface, an
// enum, or a type alias.
type Declaration interface {
	declNode()
	Pos() Position
	DeclName() string
}

// FieldDecl is a class field (property) declaration, e.g. `title: string`.
type FieldDecl struct {
	base
	Name      string
	Type      TypeNode // nil means no annotation — extractor emits nothing
	Optional  bool
	Private   bool
	Protected bool
	Abstract  bool
}

// MethodDecl is a class method or constructor declaration.
type MethodDecl struct {
	base
	Name          string
	Parameters    []*Parameter
	ReturnType    TypeNode
	IsConstructor bool
	Private       bool
	Protected     bool
	Abstract      bool
}

// ClassDecl is a class declaration: zero or more fields and methods, plus
// an optional constructor.
type ClassDecl struct {
	base
	Name        string
	Fields      []*FieldDecl
	Methods     []*MethodDecl
	Constructor *MethodDecl // nil if the class declares no explicit constructor

	// DocTags carries the declaration-local doc-comment tags recognized by
	// the Reflection-Mode Oracle (e.g. "reflection").
	DocTags map[string]string
}

func (*ClassDecl) declNode()          {}
func (c *ClassDecl) DeclName() string { return c.Name }

// FunctionDecl is a named function declaration: `function f(a: string): number {}`.
type FunctionDecl struct {
	base
	Name       string
	Parameters []*Parameter
	ReturnType TypeNode
	DocTags    map[string]string
}

func (*FunctionDecl) declNode()          {}
func (f *FunctionDecl) DeclName() string { return f.Name }

// AnonCallableKind distinguishes the two anonymous callable forms — they
// are decorated identically (Object.assign wrapping) but recorded
// separately so callers can tell which source shape produced the pack.
type AnonCallableKind int

const (
	AnonArrow AnonCallableKind = iota
	AnonFunctionExpr
)

// AnonCallableDecl is an anonymous function expression or arrow expression
// assigned to a binding, e.g. `const g = (n: Promise<string>) => n`.
type AnonCallableDecl struct {
	base
	Kind        AnonCallableKind
	BindingName string // the variable it is assigned to, for diagnostics only
	Parameters  []*Parameter
	ReturnType  TypeNode
	DocTags     map[string]string
}

func (*AnonCallableDecl) declNode()          {}
func (a *AnonCallableDecl) DeclName() string { return a.BindingName }

// InterfaceDecl is an interface declaration: a flat member list plus the
// names of any interfaces it extends (the Resolver flattens these).
type InterfaceDecl struct {
	base
	Name    string
	Members []Member
	Extends []string
}

func (*InterfaceDecl) declNode()          {}
func (i *InterfaceDecl) DeclName() string { return i.Name }

// EnumDecl is an enum (or const enum) declaration.
type EnumDecl struct {
	base
	Name    string
	IsConst bool
}

func (*EnumDecl) declNode()          {}
func (e *EnumDecl) DeclName() string { return e.Name }

// TypeAliasDecl is `type Name = RHS`.
type TypeAliasDecl struct {
	base
	Name string
	RHS  TypeNode
}

func (*TypeAliasDecl) declNode()          {}
func (t *TypeAliasDecl) DeclName() string { return t.Name }

// MappedTypeDecl stands in for a mapped-type declaration. The resolver
// recognizes this shape and refuses to evaluate it (a documented
// limitation), emitting nothing for the member that referenced it.
type MappedTypeDecl struct {
	base
	Name string
}

func (*MappedTypeDecl) declNode()          {}
func (m *MappedTypeDecl) DeclName() string { return m.Name }
