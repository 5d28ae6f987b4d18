package utils

// SliceToSet converts a slice of any comparable type to a set represented by a map[T]struct{}.
func SliceToSet[T comparable](slice []T) map[T]struct{} {
	set := make(map[T]struct{}, len(slice))
	for _, item := range slice {
		set[item] = struct{}{}
	}
	return set
}

// Intersect returns the items of a that also appear in b, in a's order and without duplicates.
func Intersect[T comparable](a, b []T) []T {
	inB := SliceToSet(b)
	emitted := make(map[T]struct{}, len(a))

	var out []T
	for _, item := range a {
		if _, ok := inB[item]; !ok {
			continue
		}
		if _, done := emitted[item]; done {
			continue
		}
		emitted[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
