// Package oracle implements the Reflection-Mode Oracle: the per-node
// decision of whether the type extractor should run at all for a given
// declaration.
package oracle

import "strings"

// Mode is a reflection policy. Always and Default gate identically — only
// Never suppresses extraction — but the two are kept distinct because a
// declaration-local "always" annotation is meant to read as an explicit
// opt-in even where it has no behavioral difference from the config-derived
// default today.
type Mode int

const (
	Never Mode = iota
	Default
	Always
)

func (m Mode) String() string {
	switch m {
	case Never:
		return "never"
	case Default:
		return "default"
	case Always:
		return "always"
	default:
		return "unknown"
	}
}

// Suppressed reports whether this mode means "do not reflect".
func (m Mode) Suppressed() bool { return m == Never }

// ParseMode recognizes the mode strings the doc-comment tag and the
// configuration field both accept: "never"/"default"/"always", and the
// boolean-like spellings the config field additionally allows
// (true -> Default, false -> Never).
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return Never, true
	case "default":
		return Default, true
	case "always":
		return Always, true
	case "true":
		return Default, true
	case "false":
		return Never, true
	default:
		return Never, false
	}
}
