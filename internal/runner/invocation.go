// Package runner executes the external analysis tools and captures their output.
package runner

import "strings"

// Invocation is an ordered process argument vector. The first token is the executable.
type Invocation []string

// Executable returns the tool name or path.
func (invocation Invocation) Executable() string {
	if len(invocation) == 0 {
		return ""
	}
	return invocation[0]
}

// Arguments returns every token after the executable.
func (invocation Invocation) Arguments() []string {
	if len(invocation) < 2 {
		return nil
	}
	return append([]string(nil), invocation[1:]...)
}

// String renders the invocation as a space-separated command line.
func (invocation Invocation) String() string {
	return strings.Join(invocation, " ")
}
