package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the item with the highest key among those
// accepted by keep (nil keeps all). The earliest index wins ties; -1 when
// nothing is kept.
func ArgMax[T any](items []T, key func(T) int, keep func(T) bool) int {
	best, bestKey := -1, 0
	for i, item := range items {
		if keep != nil && !keep(item) {
			continue
		}
		if k := key(item); best < 0 || k > bestKey {
			best, bestKey = i, k
		}
	}
	return best
}
