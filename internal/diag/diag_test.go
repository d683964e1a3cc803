package diag

import (
	"strings"
	"testing"

	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	n := New(RecoveredUnresolvedReference, typeir.Position{File: "a.ts", Line: 2, Column: 5},
		"unresolved reference to Foo", "const x = 1\nfn(Foo)\n", "a.ts")

	out := n.Format(false)
	if !strings.Contains(out, "unresolved-reference in a.ts:2:5") {
		t.Errorf("missing header in: %q", out)
	}
	if !strings.Contains(out, "fn(Foo)") {
		t.Errorf("missing source line in: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret in: %q", out)
	}
}

func TestFormatWithoutFileOmitsInClause(t *testing.T) {
	n := New(RecoveredUnhandledNode, typeir.Position{Line: 1, Column: 1}, "msg", "", "")
	out := n.Format(false)
	if !strings.HasPrefix(out, "unhandled-node at line 1:1") {
		t.Errorf("got %q", out)
	}
}

func TestErrorMatchesFormatFalse(t *testing.T) {
	n := New(RecoveredMappedType, typeir.Position{Line: 1, Column: 1}, "msg", "", "")
	if n.Error() != n.Format(false) {
		t.Error("Error() should defer to Format(false)")
	}
}
