package validator

import "fmt"

func RequiredSlice[T any](field string, value []T) Rule {
	return newRule(field, "must contain at least one item", "validation.required", nil, func() bool {
		return len(value) > 0
	})
}

func MaxLenSlice[T any](field string, value []T, max int) Rule {
	return newRule(field,
		fmt.Sprintf("must contain at most %d items", max),
		"validation.max_items",
		map[string]any{"max": max},
		func() bool { return len(value) <= max })
}

func MaxLenMap[K comparable, V any](field string, value map[K]V, max int) Rule {
	return newRule(field,
		fmt.Sprintf("must contain at most %d entries", max),
		"validation.max_items",
		map[string]any{"max": max},
		func() bool { return len(value) <= max })
}

// UniqueSlice validates that no value appears twice.
func UniqueSlice[T comparable](field string, value []T) Rule {
	return newRule(field, "must not contain duplicates", "validation.unique", nil, func() bool {
		seen := make(map[T]struct{}, len(value))
		for _, v := range value {
			if _, ok := seen[v]; ok {
				return false
			}
			seen[v] = struct{}{}
		}
		return true
	})
}
