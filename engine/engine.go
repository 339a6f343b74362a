// Package engine knows which game-authoring toolchains GamePlay can
// republish: what files their web exports must contain, and how their
// index.html asset references need to be adjusted once the export is
// served from a post's own prefix.
package engine

import (
	"log/slog"
	"strings"
)

// Tag identifies the toolchain that produced an exported web build.
// Arbitrary values are allowed; only known tags carry validation rules.
type Tag string

const (
	Unity Tag = "unity"
	Godot Tag = "godot"
)

// ParseTag normalizes an engine value from upload metadata.
func ParseTag(s string) Tag {
	return Tag(strings.ToLower(strings.TrimSpace(s)))
}

// Required substrings per engine. Validation is deliberately permissive
// substring containment, to tolerate nested export folder names like
// "MyGame/Build/". Note this also means "myBuild/" satisfies "Build/";
// that looseness is long-standing observed behavior and is kept.
var required = map[Tag][]string{
	Unity: {"index.html", "build/"},
	Godot: {"index.html", ".pck", ".wasm", ".js"},
}

// Validate reports whether paths contains the minimum files required by
// the engine's web export. paths must be lower-cased; entry order never
// affects the result. Engines with no rule set validate vacuously.
func Validate(paths []string, tag Tag) bool {
	need, ok := required[tag]
	if !ok {
		slog.Warn("no validation rules for engine, accepting archive", "engine", string(tag))
		return true
	}

	for _, substr := range need {
		if !anyContains(paths, substr) {
			return false
		}
	}
	return true
}

func anyContains(paths []string, substr string) bool {
	for _, p := range paths {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}
