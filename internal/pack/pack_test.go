package pack

import (
	"reflect"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/zgunz42/deepkit-framework/internal/opcode"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

func TestEncodeDecodeOpsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ops  []opcode.OpCode
	}{
		{"no parameters", []opcode.OpCode{opcode.OpString, opcode.OpProperty}},
		{"single opcode", []opcode.OpCode{opcode.OpAny}},
		{"one literal index", []opcode.OpCode{opcode.OpString, opcode.OpPropertySignature, 0, opcode.OpObjectLiteral, opcode.OpProperty}},
		{"spans multiple chunks", func() []opcode.OpCode {
			var ops []opcode.OpCode
			for i := 0; i < 25; i++ {
				ops = append(ops, opcode.OpString, opcode.OpPropertySignature, opcode.OpCode(i%5))
			}
			ops = append(ops, opcode.OpObjectLiteral, opcode.OpProperty)
			return ops
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeOps(tt.ops)
			decoded, err := DecodeOps(encoded)
			if err != nil {
				t.Fatalf("DecodeOps returned error: %v", err)
			}
			if !reflect.DeepEqual(decoded, tt.ops) {
				t.Errorf("round trip mismatch:\n got  %v\n want %v", decoded, tt.ops)
			}
		})
	}
}

func TestEncodeOpsChunkWidth(t *testing.T) {
	encoded := EncodeOps([]opcode.OpCode{opcode.OpString})
	if len(encoded)%ChunkCharWidth != 0 {
		t.Fatalf("encoded length %d is not a multiple of %d", len(encoded), ChunkCharWidth)
	}
}

func TestPackIsScalarWhenStackEmpty(t *testing.T) {
	p := Pack([]opcode.OpCode{opcode.OpString, opcode.OpProperty}, nil)
	if !p.IsScalar() {
		t.Error("Pack with no literal stack should be scalar")
	}
}

func TestPackCarriesLiteralStackInOrder(t *testing.T) {
	stack := []Literal{String("a"), Number(1)}
	p := Pack([]opcode.OpCode{opcode.OpLiteral, 0}, stack)
	if p.IsScalar() {
		t.Fatal("Pack with a non-empty stack must not be scalar")
	}
	if !reflect.DeepEqual(p.Literals, stack) {
		t.Errorf("Literals = %v, want %v", p.Literals, stack)
	}
}

func TestUnpackRecoversStackVerbatim(t *testing.T) {
	stack := []Literal{PropertyName("a"), PropertyName("b")}
	p := Pack([]opcode.OpCode{opcode.OpString, opcode.OpPropertySignature, 0}, stack)

	ops, gotStack, err := Unpack(p)
	if err != nil {
		t.Fatalf("Unpack returned error: %v", err)
	}
	if !reflect.DeepEqual(gotStack, stack) {
		t.Errorf("stack = %v, want %v", gotStack, stack)
	}
	want := []opcode.OpCode{opcode.OpString, opcode.OpPropertySignature, 0}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("ops = %v, want %v", ops, want)
	}
}

func TestDecodeOpsRejectsMalformedLength(t *testing.T) {
	if _, err := DecodeOps("abc"); err == nil {
		t.Error("expected an error for a string whose length is not a multiple of the chunk width")
	}
}

func TestDecodeOpsRejectsInvalidBase36Chunk(t *testing.T) {
	bad := "!!!!!!!!!!!!" // 12 chars, not valid base-36
	if _, err := DecodeOps(bad); err == nil {
		t.Error("expected an error for a non-base-36 chunk")
	}
}

func TestStackDeduplicatesStringsByValue(t *testing.T) {
	s := NewStack()
	i1 := s.Push(PropertyName("a"))
	i2 := s.Push(PropertyName("b"))
	i3 := s.Push(PropertyName("a"))

	if i1 != i3 {
		t.Errorf("two equal property names got different indices: %d vs %d", i1, i3)
	}
	if i1 == i2 {
		t.Error("distinct property names must not share an index")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStackLazyRefDedupedByIdentityNotName(t *testing.T) {
	s := NewStack()
	declA := new(int)
	declB := new(int)

	i1 := s.Push(LazyRef("Model", declA))
	i2 := s.Push(LazyRef("Model", declB))
	i3 := s.Push(LazyRef("Model", declA))

	if i1 == i2 {
		t.Error("two lazy refs to the same name but different declarations must not be deduplicated")
	}
	if i1 != i3 {
		t.Error("two lazy refs sharing a RefKey must be deduplicated")
	}
}

func TestEncodeOpsSnapshot(t *testing.T) {
	encoded := EncodeOps([]opcode.OpCode{
		opcode.OpString, opcode.OpPropertySignature, 0,
		opcode.OpNumber, opcode.OpPropertySignature, 1,
		opcode.OpObjectLiteral, opcode.OpProperty,
	})
	snaps.MatchSnapshot(t, encoded)
}
