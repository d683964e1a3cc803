// Package diag formats the recovered errors the transformer reports along
// the way: an unresolved reference, an unhandled type-node shape, an
// unparseable configuration file. None of these are fatal — per the error
// handling design, the transformer never throws out of a visitor callback —
// so this package only renders text; it is never used to abort a pass.
package diag

import (
	"fmt"
	"strings"

	"github.com/zgunz42/deepkit-framework/internal/typeir"
)

// Note is one recovered diagnostic: a position, a message, and the kind of
// recovery that was applied (so callers and tests can assert on policy, not
// just on the rendered string).
type Note struct {
	Message  string
	Source   string
	File     string
	Pos      typeir.Position
	Recovery Recovery
}

// Recovery identifies which of the fixed recovery policies produced this
// note.
type Recovery int

const (
	RecoveredUnresolvedReference Recovery = iota
	RecoveredUnhandledNode
	RecoveredMappedType
	RecoveredUnparseableConfig
	RecoveredIdempotentDecoration
)

func (r Recovery) String() string {
	switch r {
	case RecoveredUnresolvedReference:
		return "unresolved-reference"
	case RecoveredUnhandledNode:
		return "unhandled-node"
	case RecoveredMappedType:
		return "mapped-type"
	case RecoveredUnparseableConfig:
		return "unparseable-config"
	case RecoveredIdempotentDecoration:
		return "idempotent-decoration"
	default:
		return "unknown"
	}
}

// New builds a Note for a given recovery and position.
func New(recovery Recovery, pos typeir.Position, message, source, file string) Note {
	return Note{Recovery: recovery, Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface so a Note can be used as a Go error
// value when that's convenient, without implying the transformer treats it
// as fatal.
func (n Note) Error() string {
	return n.Format(false)
}

// Format renders the note with source context and a caret, mirroring the
// reference compiler's CompilerError.Format. If color is true, ANSI color
// codes decorate the caret and message for terminal output.
func (n Note) Format(color bool) string {
	var sb strings.Builder

	if n.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", n.Recovery, n.File, n.Pos.Line, n.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", n.Recovery, n.Pos.Line, n.Pos.Column)
	}

	if line := n.sourceLine(n.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", n.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(prefix)+n.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;33m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(n.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (n Note) sourceLine(lineNum int) string {
	if n.Source == "" {
		return ""
	}
	lines := strings.Split(n.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
