package surfaceparse

import (
	"github.com/zgunz42/deepkit-framework/internal/diag"
	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// ImportSpecifier is one named binding in an `import { ... } from '...'`.
type ImportSpecifier struct {
	Imported string // the name as exported by the module
	Local    string // the name bound in this file
}

// Import is one `import { ... } from 'module'` statement.
type Import struct {
	Module      string
	Specifiers  []ImportSpecifier
}

// ReExportSpecifier is one named binding in an `export { ... } from '...'`.
type ReExportSpecifier struct {
	Exported string
	As       string
}

// ReExport is one `export { ... } from 'module'` statement.
type ReExport struct {
	Module     string
	Specifiers []ReExportSpecifier
}

// File is the parsed shape of one source file: just the declarations and
// module-linkage statements the extractor and resolver need.
type File struct {
	Path          string
	Imports       []Import
	ReExports     []ReExport
	ReExportStars []string

	Classes     []*typeir.ClassDecl
	Interfaces  []*typeir.InterfaceDecl
	Functions   []*typeir.FunctionDecl
	TypeAliases []*typeir.TypeAliasDecl

	// Notes collects recoverable parse problems — an unrecognized top-level
	// statement is skipped rather than treated as fatal, per the "never
	// aborts a pass" error handling design.
	Notes []diag.Note
}

// Parser turns a token stream into a File. It is single-use: Parse builds
// a fresh one for each file it is given.
type Parser struct {
	lex  *Lexer
	file string
	cur  Token
	peek Token
	out  *File
}

// Parse lexes and parses src (the contents of path) into a File.
func Parse(path, src string) *File {
	p := &Parser{lex: New(path, src), file: path, out: &File{Path: path}}
	p.cur = p.lex.Next()
	p.peek = p.lex.Next()
	p.run()
	return p.out
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) isKeyword(kw string) bool { return p.cur.Kind == TokKeyword && p.cur.Text == kw }
func (p *Parser) isPunct(s string) bool    { return p.cur.Kind == TokPunct && p.cur.Text == s }

func (p *Parser) expectPunct(s string) bool {
	if p.isPunct(s) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) note(msg string) {
	p.out.Notes = append(p.out.Notes, diag.New(diag.RecoveredUnhandledNode, p.cur.Pos, msg, "", p.file))
}

func (p *Parser) run() {
	for p.cur.Kind != TokEOF {
		switch {
		case p.isKeyword("import"):
			p.parseImport()
		case p.isKeyword("export"):
			p.parseExport()
		case p.isKeyword("class"):
			p.out.Classes = append(p.out.Classes, p.parseClass())
		case p.isKeyword("interface"):
			p.out.Interfaces = append(p.out.Interfaces, p.parseInterface())
		case p.isKeyword("function"):
			p.out.Functions = append(p.out.Functions, p.parseFunction())
		case p.isKeyword("type"):
			p.out.TypeAliases = append(p.out.TypeAliases, p.parseTypeAlias())
		default:
			// Anything else (statements, const bindings, declare blocks) is
			// outside this parser's grammar; skip to the next statement
			// boundary so one unrecognized line does not stop the file.
			p.note("skipped unrecognized top-level construct")
			p.skipStatement()
		}
	}
}

// skipStatement consumes tokens up through the end of the current
// statement: either a balanced bracket/brace/paren block starting at cur
// (if cur opens one), or up through the next top-level semicolon.
func (p *Parser) skipStatement() {
	depth := 0
	for p.cur.Kind != TokEOF {
		switch {
		case p.isPunct("{") || p.isPunct("(") || p.isPunct("["):
			depth++
			p.advance()
		case p.isPunct("}") || p.isPunct(")") || p.isPunct("]"):
			depth--
			p.advance()
			if depth <= 0 {
				return
			}
		case p.isPunct(";") && depth == 0:
			p.advance()
			return
		default:
			p.advance()
		}
	}
}

// parseImport handles `import { A, B as C } from 'module';`.
func (p *Parser) parseImport() {
	p.advance() // 'import'
	if !p.expectPunct("{") {
		p.skipStatement()
		return
	}
	var specs []ImportSpecifier
	for !p.isPunct("}") && p.cur.Kind != TokEOF {
		if p.cur.Kind != TokIdent {
			p.advance()
			continue
		}
		imported := p.cur.Text
		local := imported
		p.advance()
		if p.isKeyword("as") {
			p.advance()
			local = p.cur.Text
			p.advance()
		}
		specs = append(specs, ImportSpecifier{Imported: imported, Local: local})
		p.expectPunct(",")
	}
	p.expectPunct("}")
	if p.isKeyword("from") {
		p.advance()
	}
	module := p.cur.Text
	if p.cur.Kind == TokString {
		p.advance()
	}
	p.expectPunct(";")
	p.out.Imports = append(p.out.Imports, Import{Module: module, Specifiers: specs})
}

// parseExport handles `export class/interface/function/type ...`,
// `export { ... } from 'module';`, and `export * from 'module';`.
func (p *Parser) parseExport() {
	p.advance() // 'export'

	if p.isPunct("*") {
		p.advance()
		if p.isKeyword("from") {
			p.advance()
		}
		module := p.cur.Text
		if p.cur.Kind == TokString {
			p.advance()
		}
		p.expectPunct(";")
		p.out.ReExportStars = append(p.out.ReExportStars, module)
		return
	}

	if p.isPunct("{") {
		p.advance()
		var specs []ReExportSpecifier
		for !p.isPunct("}") && p.cur.Kind != TokEOF {
			if p.cur.Kind != TokIdent {
				p.advance()
				continue
			}
			exported := p.cur.Text
			as := ""
			p.advance()
			if p.isKeyword("as") {
				p.advance()
				as = p.cur.Text
				p.advance()
			}
			specs = append(specs, ReExportSpecifier{Exported: exported, As: as})
			p.expectPunct(",")
		}
		p.expectPunct("}")
		if p.isKeyword("from") {
			p.advance()
			module := p.cur.Text
			if p.cur.Kind == TokString {
				p.advance()
			}
			p.expectPunct(";")
			p.out.ReExports = append(p.out.ReExports, ReExport{Module: module, Specifiers: specs})
		} else {
			p.expectPunct(";")
		}
		return
	}

	// export class/interface/function/type — the declaration itself is
	// both declared and exported; this parser does not track which names a
	// unit exports beyond "everything it declares", which is sufficient
	// for the resolver's own-unit lookup.
	switch {
	case p.isKeyword("class"):
		p.out.Classes = append(p.out.Classes, p.parseClass())
	case p.isKeyword("interface"):
		p.out.Interfaces = append(p.out.Interfaces, p.parseInterface())
	case p.isKeyword("function"):
		p.out.Functions = append(p.out.Functions, p.parseFunction())
	case p.isKeyword("type"):
		p.out.TypeAliases = append(p.out.TypeAliases, p.parseTypeAlias())
	default:
		p.skipStatement()
	}
}

func (p *Parser) parseDocTags() map[string]string {
	// Doc-comment tags are stripped by skipTrivia before tokens are ever
	// produced; a real host compiler's comment-aware lexer would retain
	// them for this lookup. This stand-in never sees a "reflection" tag, so
	// every declaration's mode is decided by session override or
	// configuration alone — a documented limitation of this minimal parser.
	return nil
}

func (p *Parser) parseClass() *typeir.ClassDecl {
	pos := p.cur.Pos
	p.advance() // 'class'
	name := p.cur.Text
	p.advance()

	decl := &typeir.ClassDecl{Name: name, DocTags: p.parseDocTags()}
	decl.Position = pos

	if p.isKeyword("extends") {
		p.advance()
		p.advance() // superclass name, not modeled
	}

	if !p.expectPunct("{") {
		return decl
	}

	for !p.isPunct("}") && p.cur.Kind != TokEOF {
		private, protected, abstract := p.parseModifiers()

		if p.isKeyword("constructor") {
			p.advance()
			params := p.parseParamList()
			decl.Constructor = &typeir.MethodDecl{
				IsConstructor: true, Parameters: params,
				Private: private, Protected: protected, Abstract: abstract,
			}
			p.skipBlockOrSemi()
			continue
		}

		if p.cur.Kind != TokIdent && p.cur.Kind != TokKeyword {
			p.advance()
			continue
		}
		memberName := p.cur.Text
		p.advance()

		if p.isPunct("(") {
			params := p.parseParamList()
			var ret typeir.TypeNode
			if p.expectPunct(":") {
				ret = p.parseType()
			}
			decl.Methods = append(decl.Methods, &typeir.MethodDecl{
				Name: memberName, Parameters: params, ReturnType: ret,
				Private: private, Protected: protected, Abstract: abstract,
			})
			p.skipBlockOrSemi()
			continue
		}

		optional := p.expectPunct("?")
		var fieldType typeir.TypeNode
		if p.expectPunct(":") {
			fieldType = p.parseType()
		}
		decl.Fields = append(decl.Fields, &typeir.FieldDecl{
			Name: memberName, Type: fieldType, Optional: optional,
			Private: private, Protected: protected, Abstract: abstract,
		})
		p.expectPunct(";")
	}
	p.expectPunct("}")
	return decl
}

func (p *Parser) parseModifiers() (private, protected, abstract bool) {
	for {
		switch {
		case p.isKeyword("private"):
			private = true
			p.advance()
		case p.isKeyword("protected"):
			protected = true
			p.advance()
		case p.isKeyword("public"), p.isKeyword("readonly"), p.isKeyword("static"):
			p.advance()
		case p.isKeyword("abstract"):
			abstract = true
			p.advance()
		default:
			return
		}
	}
}

func (p *Parser) parseParamList() []*typeir.Parameter {
	var params []*typeir.Parameter
	if !p.expectPunct("(") {
		return params
	}
	for !p.isPunct(")") && p.cur.Kind != TokEOF {
		p.parseModifiers()
		name := p.cur.Text
		p.advance()
		p.expectPunct("?")
		var t typeir.TypeNode
		if p.expectPunct(":") {
			t = p.parseType()
		}
		params = append(params, &typeir.Parameter{Name: name, Type: t})
		p.expectPunct(",")
	}
	p.expectPunct(")")
	return params
}

func (p *Parser) skipBlockOrSemi() {
	if p.isPunct("{") {
		p.skipStatement()
		return
	}
	p.expectPunct(";")
}

func (p *Parser) parseInterface() *typeir.InterfaceDecl {
	pos := p.cur.Pos
	p.advance() // 'interface'
	name := p.cur.Text
	p.advance()

	decl := &typeir.InterfaceDecl{Name: name}
	decl.Position = pos

	if p.isKeyword("extends") {
		p.advance()
		for {
			decl.Extends = append(decl.Extends, p.cur.Text)
			p.advance()
			if !p.expectPunct(",") {
				break
			}
		}
	}

	if !p.expectPunct("{") {
		return decl
	}
	for !p.isPunct("}") && p.cur.Kind != TokEOF {
		if p.cur.Kind != TokIdent && p.cur.Kind != TokKeyword {
			p.advance()
			continue
		}
		name := p.cur.Text
		memberPos := p.cur.Pos
		p.advance()
		optional := p.expectPunct("?")

		if p.isPunct("(") {
			params := p.parseParamList()
			var ret typeir.TypeNode
			if p.expectPunct(":") {
				ret = p.parseType()
			}
			m := &typeir.MethodSignature{Name: name, Parameters: params, ReturnType: ret}
			m.Position = memberPos
			decl.Members = append(decl.Members, m)
			p.expectPunct(";")
			continue
		}

		var t typeir.TypeNode
		if p.expectPunct(":") {
			t = p.parseType()
		}
		prop := &typeir.PropertySignature{Name: name, Type: t, Optional: optional}
		prop.Position = memberPos
		decl.Members = append(decl.Members, prop)
		p.expectPunct(";")
	}
	p.expectPunct("}")
	return decl
}

func (p *Parser) parseFunction() *typeir.FunctionDecl {
	pos := p.cur.Pos
	p.advance() // 'function'
	name := p.cur.Text
	p.advance()
	params := p.parseParamList()
	var ret typeir.TypeNode
	if p.expectPunct(":") {
		ret = p.parseType()
	}
	decl := &typeir.FunctionDecl{Name: name, Parameters: params, ReturnType: ret, DocTags: p.parseDocTags()}
	decl.Position = pos
	p.skipBlockOrSemi()
	return decl
}

func (p *Parser) parseTypeAlias() *typeir.TypeAliasDecl {
	pos := p.cur.Pos
	p.advance() // 'type'
	name := p.cur.Text
	p.advance()
	if p.isPunct("<") {
		p.skipAngleBrackets()
	}
	p.expectPunct("=")
	rhs := p.parseType()
	p.expectPunct(";")
	decl := &typeir.TypeAliasDecl{Name: name, RHS: rhs}
	decl.Position = pos
	return decl
}

func (p *Parser) skipAngleBrackets() {
	depth := 0
	for p.cur.Kind != TokEOF {
		if p.isPunct("<") {
			depth++
		}
		if p.isPunct(">") {
			depth--
			p.advance()
			if depth == 0 {
				return
			}
			continue
		}
		p.advance()
	}
}

// parseType parses a type expression: a union of postfix (array) types over
// primary types, the precedence climb the extractor contract's grammar
// needs (primitives, arrays, unions, literals, object literals, index
// signatures, callables, type references).
func (p *Parser) parseType() typeir.TypeNode {
	first := p.parsePostfixType()
	if !p.isPunct("|") {
		return first
	}
	members := []typeir.TypeNode{first}
	for p.expectPunct("|") {
		members = append(members, p.parsePostfixType())
	}
	return &typeir.UnionType{Members: members}
}

func (p *Parser) parsePostfixType() typeir.TypeNode {
	t := p.parsePrimaryType()
	for p.isPunct("[") {
		p.advance()
		p.expectPunct("]")
		t = &typeir.ArrayType{Element: t}
	}
	return t
}

func (p *Parser) parsePrimaryType() typeir.TypeNode {
	pos := p.cur.Pos

	if p.isPunct("(") {
		p.advance()
		inner := p.parseType()
		p.expectPunct(")")
		return &typeir.ParenType{Inner: inner}
	}

	if p.isPunct("{") {
		return p.parseObjectOrIndexType()
	}

	if p.cur.Kind == TokString {
		lit := &typeir.LiteralTypeNode{Kind: typeir.LiteralString, Str: p.cur.Text}
		lit.Position = pos
		p.advance()
		return lit
	}
	if p.cur.Kind == TokNumber {
		lit := &typeir.LiteralTypeNode{Kind: typeir.LiteralNumber, Num: p.cur.Num}
		lit.Position = pos
		p.advance()
		return lit
	}
	if p.isKeyword("true") || p.isKeyword("false") {
		lit := &typeir.LiteralTypeNode{Kind: typeir.LiteralBoolean, Bool: p.cur.Text == "true"}
		lit.Position = pos
		p.advance()
		return lit
	}

	if p.isKeyword("string") || p.isKeyword("number") || p.isKeyword("boolean") ||
		p.isKeyword("any") || p.isKeyword("void") || p.isKeyword("null") ||
		p.isKeyword("undefined") || p.isKeyword("bigint") {
		kind := map[string]typeir.Primitive{
			"string": typeir.PrimitiveString, "number": typeir.PrimitiveNumber,
			"boolean": typeir.PrimitiveBoolean, "any": typeir.PrimitiveAny,
			"void": typeir.PrimitiveVoid, "null": typeir.PrimitiveNull,
			"undefined": typeir.PrimitiveUndefined, "bigint": typeir.PrimitiveBigInt,
		}[p.cur.Text]
		p.advance()
		prim := &typeir.PrimitiveType{Kind: kind}
		prim.Position = pos
		return prim
	}

	if p.cur.Kind == TokIdent {
		name := p.cur.Text
		p.advance()
		ref := &typeir.TypeReference{Name: name}
		ref.Position = pos
		if p.isPunct("<") {
			ref.TypeArgs = p.parseTypeArgList()
		}
		return ref
	}

	// Unrecognized shape (conditional types, mapped types, query types,
	// etc): recovered as an opaque node the extractor maps to Any.
	u := &typeir.UnhandledType{Description: p.cur.Text}
	u.Position = pos
	if p.cur.Kind != TokEOF {
		p.advance()
	}
	return u
}

func (p *Parser) parseTypeArgList() []typeir.TypeNode {
	var args []typeir.TypeNode
	p.advance() // '<'
	for !p.isPunct(">") && p.cur.Kind != TokEOF {
		args = append(args, p.parseType())
		p.expectPunct(",")
	}
	p.expectPunct(">")
	return args
}

// parseObjectOrIndexType parses `{ [key: K]: V }` or `{ member: T; ... }`.
func (p *Parser) parseObjectOrIndexType() typeir.TypeNode {
	pos := p.cur.Pos
	p.advance() // '{'

	if p.isPunct("[") {
		p.advance()
		p.advance() // key name
		var keyType typeir.TypeNode
		if p.expectPunct(":") {
			keyType = p.parseType()
		}
		p.expectPunct("]")
		var valueType typeir.TypeNode
		if p.expectPunct(":") {
			valueType = p.parseType()
		}
		p.expectPunct("}")
		idx := &typeir.IndexSignatureType{KeyType: keyType, ValueType: valueType}
		idx.Position = pos
		return idx
	}

	var members []typeir.Member
	for !p.isPunct("}") && p.cur.Kind != TokEOF {
		if p.isPunct("[") {
			// An index signature alongside named members has no
			// representation in ObjectLiteralType; skip the bracketed
			// key clause rather than misreading its tokens as members.
			p.advance()
			for !p.isPunct("]") && p.cur.Kind != TokEOF {
				p.advance()
			}
			p.expectPunct("]")
			p.expectPunct(":")
			p.parseType()
			if !p.expectPunct(";") {
				p.expectPunct(",")
			}
			continue
		}
		if p.cur.Kind != TokIdent && p.cur.Kind != TokKeyword {
			p.advance()
			continue
		}
		name := p.cur.Text
		memberPos := p.cur.Pos
		p.advance()
		optional := p.expectPunct("?")

		if p.isPunct("(") {
			params := p.parseParamList()
			var ret typeir.TypeNode
			if p.expectPunct(":") {
				ret = p.parseType()
			}
			m := &typeir.MethodSignature{Name: name, Parameters: params, ReturnType: ret}
			m.Position = memberPos
			members = append(members, m)
		} else {
			var t typeir.TypeNode
			if p.expectPunct(":") {
				t = p.parseType()
			}
			prop := &typeir.PropertySignature{Name: name, Type: t, Optional: optional}
			prop.Position = memberPos
			members = append(members, prop)
		}
		if !p.expectPunct(";") {
			p.expectPunct(",")
		}
	}
	p.expectPunct("}")
	obj := &typeir.ObjectLiteralType{Members: members}
	obj.Position = pos
	return obj
}
