// Package pack implements the wire codec for instruction streams: a pure,
// allocation-light transform between (opcode sequence, literal stack) pairs
// and the compact textual Packed form that gets embedded in emitted program
// output.
//
// The codec treats the opcode sequence as a sequence of base-(2^packSizeByte)
// digits, chunked into fixed-width groups so that a value can grow past a
// single machine word without losing its self-delimiting End sentinel — the
// same chunked-bigint idea the reference compiler's bytecode serializer uses
// for its length-prefixed sections, adapted here to a chunk that fits in the
// handful of bits a printable string needs to stay portable across a
// double-precision-float host runtime.
package pack

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/zgunz42/deepkit-framework/internal/opcode"
)

// PackSizeBits is the bit width of a single instruction-set slot. The
// instruction set (package opcode) is required to fit within it.
const PackSizeBits = 6

// SlotsPerChunk is the number of 6-bit slots encoded into one fixed-width
// base-36 chunk. 8 slots occupy 48 bits, which fits in 12 base-36
// characters (36^12 > 2^48) and stays inside the 53-bit exact-integer range
// of a double.
const SlotsPerChunk = 8

// ChunkCharWidth is the printable width, in base-36 characters, of one
// encoded chunk. Every chunk is left-padded with '0' to this width so chunk
// boundaries are fixed and decoding never has to guess where one ends.
const ChunkCharWidth = 12

const slotMask = (1 << PackSizeBits) - 1

// LiteralKind discriminates the four flavors of entry the literal stack may
// carry, per the data model: literal values (string/number/bool), property
// name strings, and lazy references.
type LiteralKind int

const (
	KindString LiteralKind = iota
	KindNumber
	KindBool
	KindPropertyName
	KindLazyRef
)

// Literal is one entry on the literal stack. Only the fields relevant to
// Kind are meaningful; the rest are zero.
//
// For KindLazyRef, RefKey identifies the referenced declaration for the
// purposes of deduplication. Per the extractor contract, reference entries
// are deduplicated by identity, not by structural value — two lazy
// references to textually identical names are distinct entries unless they
// carry the same RefKey (typically a pointer to the resolved declaration,
// supplied by the resolver's memoized symbol cache).
type Literal struct {
	Kind   LiteralKind
	Str    string
	Num    float64
	Bool   bool
	RefKey any
}

// String returns a String literal entry.
func String(s string) Literal { return Literal{Kind: KindString, Str: s} }

// Number returns a Number literal entry.
func Number(n float64) Literal { return Literal{Kind: KindNumber, Num: n} }

// Bool returns a Boolean literal entry.
func Bool(b bool) Literal { return Literal{Kind: KindBool, Bool: b} }

// PropertyName returns a property-name entry.
func PropertyName(name string) Literal { return Literal{Kind: KindPropertyName, Str: name} }

// LazyRef returns a lazy-reference entry identifying a class or enum
// declaration. name is carried for rendering; refKey is the deduplication
// identity (see Literal.RefKey).
func LazyRef(name string, refKey any) Literal {
	return Literal{Kind: KindLazyRef, Str: name, RefKey: refKey}
}

// Equal reports whether l and o are the same literal-stack entry for
// deduplication purposes.
func (l Literal) Equal(o Literal) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case KindString, KindPropertyName:
		return l.Str == o.Str
	case KindNumber:
		return l.Num == o.Num
	case KindBool:
		return l.Bool == o.Bool
	case KindLazyRef:
		return l.RefKey == o.RefKey
	default:
		return false
	}
}

// Stack is the ordered, append-only, deduplicated literal stack the type
// extractor accumulates alongside an opcode sequence.
type Stack struct {
	entries []Literal
}

// NewStack returns an empty literal stack.
func NewStack() *Stack { return &Stack{} }

// Push finds lit by structural equality (see Literal.Equal) via a linear
// scan and returns its existing index, or appends it and returns the new
// index. The stack is small in practice (one declaration's worth of
// literals), so linear search is simpler and just as stable as a map.
func (s *Stack) Push(lit Literal) int {
	for i, e := range s.entries {
		if e.Equal(lit) {
			return i
		}
	}
	s.entries = append(s.entries, lit)
	return len(s.entries) - 1
}

// Len returns the number of entries currently on the stack.
func (s *Stack) Len() int { return len(s.entries) }

// Entries returns the stack contents in insertion order. The caller must
// not mutate the returned slice.
func (s *Stack) Entries() []Literal { return s.entries }

// Packed is the wire representation of a PackStruct: an encoded opcode
// string plus, when non-empty, the literal stack that precedes it.
type Packed struct {
	Literals []Literal
	Code     string
}

// IsScalar reports whether this Packed form has no literal stack, in which
// case it is rendered as a bare string rather than an array.
func (p Packed) IsScalar() bool { return len(p.Literals) == 0 }

// Pack encodes ops and stack into a Packed form. The End sentinel is
// appended automatically; callers must not include it in ops.
func Pack(ops []opcode.OpCode, stack []Literal) Packed {
	return Packed{
		Literals: stack,
		Code:     EncodeOps(ops),
	}
}

// EncodeOps renders an opcode sequence (without a trailing End — it is
// appended here) as the chunked base-36 instruction string.
func EncodeOps(ops []opcode.OpCode) string {
	full := make([]opcode.OpCode, 0, len(ops)+1)
	full = append(full, ops...)
	full = append(full, opcode.OpEnd)

	var sb strings.Builder
	for off := 0; off < len(full); off += SlotsPerChunk {
		end := off + SlotsPerChunk
		if end > len(full) {
			end = len(full)
		}
		sb.WriteString(encodeChunk(full[off:end]))
	}
	return sb.String()
}

// encodeChunk packs up to SlotsPerChunk opcodes (slot 0 = least
// significant) into one fixed-width base-36 string, left-padded with '0'.
func encodeChunk(slots []opcode.OpCode) string {
	value := new(big.Int)
	shift := new(big.Int)
	for i, op := range slots {
		shift.Lsh(big.NewInt(int64(op)), uint(i*PackSizeBits))
		value.Add(value, shift)
	}
	text := value.Text(36)
	if len(text) < ChunkCharWidth {
		text = strings.Repeat("0", ChunkCharWidth-len(text)) + text
	}
	return text
}

// Unpack decodes a Packed form back into an opcode sequence (terminated
// implicitly, End is not included in the result) and its literal stack.
func Unpack(p Packed) ([]opcode.OpCode, []Literal, error) {
	ops, err := DecodeOps(p.Code)
	if err != nil {
		return nil, nil, err
	}
	return ops, p.Literals, nil
}

// DecodeOps reverses EncodeOps: it walks the string in fixed 12-character
// chunks, extracts SlotsPerChunk 6-bit slots from each, and stops at the
// first End (zero) slot that is not a parameter slot (see
// opcode.ParamSlots), so a literal-stack index of 0 is kept.
func DecodeOps(s string) ([]opcode.OpCode, error) {
	if len(s)%ChunkCharWidth != 0 {
		return nil, fmt.Errorf("pack: malformed instruction string: length %d is not a multiple of %d", len(s), ChunkCharWidth)
	}

	var ops []opcode.OpCode
	params := 0
	for off := 0; off < len(s); off += ChunkCharWidth {
		chunk := s[off : off+ChunkCharWidth]
		value, ok := new(big.Int).SetString(chunk, 36)
		if !ok {
			return nil, fmt.Errorf("pack: malformed instruction chunk %q: not valid base-36", chunk)
		}

		mask := big.NewInt(slotMask)
		slot := new(big.Int)
		shifted := new(big.Int).Set(value)
		done := false
		for i := 0; i < SlotsPerChunk; i++ {
			slot.And(shifted, mask)
			op := opcode.OpCode(slot.Uint64())
			if params > 0 {
				params--
			} else if op == opcode.OpEnd {
				done = true
				break
			} else {
				params = opcode.ParamSlots(op)
			}
			ops = append(ops, op)
			shifted.Rsh(shifted, PackSizeBits)
		}
		if done {
			break
		}
	}
	return ops, nil
}
