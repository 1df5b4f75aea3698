// Package collection provides generic slice helpers for id lists and row
// sets. Every function returns a new, non-nil slice and keeps input order.
//
//	ids := collection.Pluck(products, func(p models.Product) string { return p.ID })
//	missing := collection.Difference(requested, ids)
package collection

// Pluck extracts one value from every element.
func Pluck[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements for which keep returns true.
func Filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Without returns s with every occurrence of v removed.
func Without[T comparable](s []T, v T) []T {
	return Filter(s, func(x T) bool { return x != v })
}

// Unique drops repeated elements, keeping the first occurrence.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	return Filter(s, func(v T) bool {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
		return true
	})
}

// Difference lists the distinct elements of s that are not in other, in
// first-seen order.
func Difference[T comparable](s, other []T) []T {
	have := make(map[T]struct{}, len(other))
	for _, v := range other {
		have[v] = struct{}{}
	}
	return Unique(Filter(s, func(v T) bool {
		_, ok := have[v]
		return !ok
	}))
}

// KeyBy indexes s by the key fn returns. On duplicate keys the last wins.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}

// Take returns at most the first n elements.
func Take[T any](s []T, n int) []T {
	n = max(0, min(n, len(s)))
	return append(make([]T, 0, n), s[:n]...)
}
