// Package pyreverse builds command lines for the pyreverse diagram tool and
// collects the diagram files it writes.
package pyreverse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultExecutable is the diagram tool name used when Options.Executable is empty.
	DefaultExecutable = "pyreverse"

	depthAllLiteral = "ALL"
)

// ErrInvalidDepth reports a depth value that is neither ALL nor a non-negative integer.
var ErrInvalidDepth = errors.New("pyreverse: invalid depth")

// Attribute filter modes recognized by pyreverse.
const (
	FilterPublicOnly = "PUB_ONLY"
	FilterSpecial    = "SPECIAL"
	FilterOther      = "OTHER"
	FilterAll        = "ALL"
)

var recognizedFilters = map[string]struct{}{
	FilterPublicOnly: {},
	FilterSpecial:    {},
	FilterOther:      {},
	FilterAll:        {},
}

// IsRecognizedFilter reports whether value is one of the four attribute filter modes.
func IsRecognizedFilter(value string) bool {
	_, recognized := recognizedFilters[value]
	return recognized
}

type depthKind int

const (
	depthAbsent depthKind = iota
	depthAll
	depthLevels
)

// Depth is an optional traversal depth: absent, ALL, or an explicit number of levels.
// The zero value is absent, so Levels(0) stays distinguishable from "not set".
type Depth struct {
	kind   depthKind
	levels int
}

// AllLevels returns a depth that traverses without limit.
func AllLevels() Depth {
	return Depth{kind: depthAll}
}

// Levels returns a depth limited to the given number of levels.
func Levels(levels int) Depth {
	return Depth{kind: depthLevels, levels: levels}
}

// IsSet reports whether the depth was provided.
func (depth Depth) IsSet() bool {
	return depth.kind != depthAbsent
}

// IsAll reports whether the depth is unlimited.
func (depth Depth) IsAll() bool {
	return depth.kind == depthAll
}

// Value returns the explicit level count and whether one is set.
func (depth Depth) Value() (int, bool) {
	return depth.levels, depth.kind == depthLevels
}

func (depth Depth) String() string {
	switch depth.kind {
	case depthAll:
		return depthAllLiteral
	case depthLevels:
		return strconv.Itoa(depth.levels)
	default:
		return ""
	}
}

// ParseDepth converts a textual depth. An empty value is absent, ALL is
// case-insensitive, and anything else must be a non-negative integer.
func ParseDepth(value string) (Depth, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Depth{}, nil
	}
	if strings.EqualFold(trimmed, depthAllLiteral) {
		return AllLevels(), nil
	}
	levels, parseError := strconv.Atoi(trimmed)
	if parseError != nil || levels < 0 {
		return Depth{}, fmt.Errorf("%w: %q", ErrInvalidDepth, value)
	}
	return Levels(levels), nil
}

// Options describes one pyreverse invocation. Values are read, never modified, by BuildCommand.
type Options struct {
	Executable             string
	OutputFormat           string
	OutputName             string
	AncestorDepth          Depth
	AssociatedClassesDepth Depth
	ModuleNames            bool
	AttributeFilter        string
	ClassesOnly            bool
	ShowBuiltins           bool
	Target                 string
	ProjectName            string
}
