// Package xslices provides slice helpers that the standard slices
// package doesn't.
package xslices

// Filter returns a new slice containing the elements of s for which
// f reports true, preserving order.
func Filter[T any, S ~[]T](s S, f func(T) bool) (r S) {
	r = make(S, 0, len(s))
	for _, v := range s {
		if f(v) {
			r = append(r, v)
		}
	}
	return r
}
