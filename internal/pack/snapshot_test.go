package pack

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/zgunz42/deepkit-framework/internal/opcode"
)

// TestPackRoundTripSnapshot pins the exact chunked base-36 Code string for a
// representative opcode sequence, and verifies DecodeOps reverses it.
func TestPackRoundTripSnapshot(t *testing.T) {
	ops := []opcode.OpCode{
		opcode.OpString, opcode.OpPropertySignature, 0,
		opcode.OpNumber, opcode.OpPropertySignature, 1,
		opcode.OpObjectLiteral,
	}
	stack := NewStack()
	stack.Push(PropertyName("title"))
	stack.Push(PropertyName("pages"))

	p := Pack(ops, stack.Entries())
	snaps.MatchSnapshot(t, p.Code)

	decoded, err := DecodeOps(p.Code)
	if err != nil {
		t.Fatalf("DecodeOps: %v", err)
	}
	if len(decoded) != len(ops) {
		t.Fatalf("round-trip length mismatch: got %v, want %v", decoded, ops)
	}
	for i, op := range ops {
		if decoded[i] != op {
			t.Errorf("op[%d]: got %v, want %v", i, decoded[i], op)
		}
	}
}

// TestPackLongSequenceSpansMultipleChunksSnapshot pins the encoding of a
// sequence long enough to span more than one fixed-width chunk, exercising
// the chunk-boundary logic the scalar single-chunk cases never touch.
func TestPackLongSequenceSpansMultipleChunksSnapshot(t *testing.T) {
	ops := make([]opcode.OpCode, 0, 15)
	for i := 0; i < 15; i++ {
		ops = append(ops, opcode.OpUnion)
	}
	p := Pack(ops, nil)
	snaps.MatchSnapshot(t, p.Code)

	decoded, err := DecodeOps(p.Code)
	if err != nil {
		t.Fatalf("DecodeOps: %v", err)
	}
	if len(decoded) != len(ops) {
		t.Fatalf("got %d ops, want %d", len(decoded), len(ops))
	}
}
