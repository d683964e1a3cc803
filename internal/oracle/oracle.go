package oracle

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// ConfigProbe locates the nearest hierarchical configuration file for a
// directory. Finding that file on disk is the file-system probe's job —
// an external collaborator to this package — so ConfigProbe is the seam
// between the two: the Oracle consumes whatever bytes the probe hands back
// and never walks a directory tree itself beyond asking the probe, once per
// unique directory, and caching the answer.
type ConfigProbe interface {
	// NearestConfig returns the contents of the nearest configuration file
	// at or above dir that settles the reflection mode. ok is false if none
	// exists anywhere up the tree.
	NearestConfig(dir string) (data []byte, ok bool)
}

// DirProbe is a ConfigProbe backed directly by the OS file system: it walks
// dir and its ancestors looking for a file named Filename, skipping any such
// file that is valid JSON but has no "reflection" field, so the first
// ancestor carrying the field wins. A file that is not valid JSON is
// returned as found so the Oracle reports it as unparseable. It exists so the
// CLI has something runnable by default; production hosts are expected to
// supply their own probe wired to their own project-file resolution.
type DirProbe struct {
	Filename string // e.g. "reflection.json"
}

func NewDirProbe(filename string) *DirProbe {
	if filename == "" {
		filename = "reflection.json"
	}
	return &DirProbe{Filename: filename}
}

func (p *DirProbe) NearestConfig(dir string) ([]byte, bool) {
	for {
		candidate := dir + string(os.PathSeparator) + p.Filename
		if data, err := os.ReadFile(candidate); err == nil {
			stripped := stripJSONComments(data)
			if !gjson.ValidBytes(stripped) || gjson.GetBytes(stripped, "reflection").Exists() {
				return data, true
			}
		}
		parent := parentDir(dir)
		if parent == dir {
			return nil, false
		}
		dir = parent
	}
}

func parentDir(dir string) string {
	trimmed := strings.TrimRight(dir, string(os.PathSeparator))
	idx := strings.LastIndexByte(trimmed, os.PathSeparator)
	if idx <= 0 {
		return string(os.PathSeparator)
	}
	return trimmed[:idx]
}

// DocTags is the set of doc-comment tags attached to a declaration,
// collected while walking from the node up its parent chain (nearest node
// first). Only the "reflection" tag is meaningful to the Oracle.
type DocTags = map[string]string

var bannerOnce sync.Once

// configEntry is the memoized result of probing one directory: Found is
// false when no ancestor config carried a "reflection" field at all, in
// which case Mode is meaningless.
type configEntry struct {
	Mode  Mode
	Found bool
}

// Oracle resolves the effective reflection mode for a declaration,
// following the fixed precedence: declaration-local doc tag, then session
// override, then hierarchical configuration file, then Never.
type Oracle struct {
	probe     ConfigProbe
	override  *Mode
	configMu  sync.Mutex
	configFor map[string]configEntry // memoized per-directory lookup
	warn      func(string)
}

// New returns an Oracle backed by probe. probe may be nil, in which case
// the hierarchical configuration step always misses and the Oracle falls
// straight through to the session override / Never.
func New(probe ConfigProbe) *Oracle {
	return &Oracle{
		probe:     probe,
		configFor: make(map[string]configEntry),
		warn:      func(msg string) { fmt.Fprintln(os.Stderr, "warning: "+msg) },
	}
}

// Announce writes the one-line "transformer is active" banner to stderr,
// exactly once per process, the first time any Oracle resolves a mode.
func Announce() {
	bannerOnce.Do(func() {
		fmt.Fprintln(os.Stderr, "type-reflection transformer active")
	})
}

// SetSessionOverride installs an override supplied programmatically by the
// host application, taking precedence over hierarchical configuration but
// not over a declaration's own doc-comment tag.
func (o *Oracle) SetSessionOverride(m Mode) {
	o.override = &m
}

// ClearSessionOverride removes a previously-set override.
func (o *Oracle) ClearSessionOverride() {
	o.override = nil
}

// Resolve computes the effective mode for a declaration. docTags is the
// accumulated set of doc-comment tags found while walking up the node's
// parent chain (nearest first) — the caller does that walk, since it
// requires the host AST's parent links, which this package does not own.
// dir is the directory of the declaration's source file, used for the
// hierarchical configuration lookup.
func (o *Oracle) Resolve(docTags DocTags, dir string) Mode {
	Announce()

	if raw, ok := docTags["reflection"]; ok {
		if mode, ok := ParseMode(raw); ok {
			return mode
		}
	}

	if o.override != nil {
		return *o.override
	}

	if mode, ok := o.lookupConfig(dir); ok {
		return mode
	}

	return Never
}

func (o *Oracle) lookupConfig(dir string) (Mode, bool) {
	o.configMu.Lock()
	if entry, ok := o.configFor[dir]; ok {
		o.configMu.Unlock()
		return entry.Mode, entry.Found
	}
	o.configMu.Unlock()

	entry := o.probeConfig(dir)

	o.configMu.Lock()
	o.configFor[dir] = entry
	o.configMu.Unlock()
	return entry.Mode, entry.Found
}

func (o *Oracle) probeConfig(dir string) configEntry {
	if o.probe == nil {
		return configEntry{}
	}

	data, ok := o.probe.NearestConfig(dir)
	if !ok {
		return configEntry{}
	}

	mode, found, err := parseReflectionField(data)
	if err != nil {
		o.warn(fmt.Sprintf("unparseable configuration for %s: %v", dir, err))
		return configEntry{}
	}
	return configEntry{Mode: mode, Found: found}
}

// parseReflectionField strips // and /* */ comments (configuration files
// may carry JSON with comments) and queries the "reflection" field with
// gjson, rather than unmarshalling the whole document into a Go
// struct: the configuration file may carry fields this Oracle doesn't know
// about, and a path query matches this package's "decide one field, ignore
// the rest" posture better than a full decode would.
func parseReflectionField(data []byte) (Mode, bool, error) {
	stripped := stripJSONComments(data)
	if !gjson.ValidBytes(stripped) {
		return Never, false, fmt.Errorf("not valid JSON after stripping comments")
	}
	result := gjson.GetBytes(stripped, "reflection")
	if !result.Exists() {
		return Never, false, nil
	}
	switch result.Type {
	case gjson.True:
		return Default, true, nil
	case gjson.False:
		return Never, true, nil
	case gjson.String:
		mode, ok := ParseMode(result.Str)
		if !ok {
			return Never, false, fmt.Errorf("unrecognized reflection mode %q", result.Str)
		}
		return mode, true, nil
	default:
		return Never, false, fmt.Errorf("reflection field must be a string or boolean")
	}
}

// stripJSONComments removes // line comments and /* */ block comments
// outside of string literals, so a JSONC document can be handed to a
// strict JSON parser (gjson included).
func stripJSONComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == '/' && i+1 < len(data) && data[i+1] == '/' {
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
			continue
		}

		if c == '/' && i+1 < len(data) && data[i+1] == '*' {
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i++ // consume the closing '/'
			continue
		}

		out = append(out, c)
	}
	return out
}
