package utils

func FindIndex[T comparable](slice []T, item T) int {
	return FindIndexFunc(slice, func(v T) bool { return v == item })
}

func FindIndexFunc[T any](slice []T, match func(T) bool) int {
	for i, v := range slice {
		if match(v) {
			return i
		}
	}
	return -1
}
