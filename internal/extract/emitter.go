package extract

import (
	"github.com/zgunz42/deepkit-framework/internal/opcode"
	"github.com/zgunz42/deepkit-framework/internal/pack"
)

// Emitter accumulates one declaration's instruction stream and the literal
// stack it references, the way the reference compiler's code generator
// accumulates one function's bytecode buffer before handing it to the
// serializer. A fresh Emitter is used per extracted member/function/anon
// callable — the literal stack is not shared across declarations.
type Emitter struct {
	Ops   []opcode.OpCode
	Stack *pack.Stack
}

// NewEmitter returns an Emitter with an empty instruction stream and literal
// stack.
func NewEmitter() *Emitter {
	return &Emitter{Stack: pack.NewStack()}
}

// Emit appends a single opcode with no inline parameter.
func (e *Emitter) Emit(op opcode.OpCode) {
	e.Ops = append(e.Ops, op)
}

// EmitIndexed appends op followed by the literal-stack index idx as its
// inline parameter slot.
func (e *Emitter) EmitIndexed(op opcode.OpCode, idx int) {
	e.Ops = append(e.Ops, op, opcode.OpCode(idx))
}

// Push dedups lit onto the literal stack and returns its index.
func (e *Emitter) Push(lit pack.Literal) int {
	return e.Stack.Push(lit)
}

// Pack finalizes the emitter's instruction stream and literal stack into the
// wire Packed form.
func (e *Emitter) Pack() pack.Packed {
	return pack.Pack(e.Ops, e.Stack.Entries())
}

// Empty reports whether nothing was ever emitted onto this stream.
func (e *Emitter) Empty() bool { return len(e.Ops) == 0 }
