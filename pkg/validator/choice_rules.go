package validator

import (
	"fmt"
	"slices"
)

func OneOf[T comparable](field string, value T, options []T) Rule {
	return newRule(field,
		fmt.Sprintf("must be one of: %v", options),
		"validation.in_list",
		map[string]any{"allowed_values": options},
		func() bool { return slices.Contains(options, value) })
}

func OneOfString(field, value string, options []string) Rule {
	return OneOf(field, value, options)
}
