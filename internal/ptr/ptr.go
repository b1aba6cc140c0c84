// Package ptr provides pointer helper functions.
// Similar to k8s.io/utils/ptr for working with optional fields.
package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}
