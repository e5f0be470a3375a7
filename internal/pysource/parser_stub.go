//go:build !cgo

package pysource

// Available reports whether class indexing is compiled in. Without cgo the
// tree-sitter grammar cannot be linked and every index is empty.
func Available() bool {
	return false
}

func collectClassNames(root string, moduleOf func(string) string) ([]string, error) {
	return nil, nil
}
