package validator

import "fmt"

func MinNum[T Numeric](field string, value T, min T) Rule {
	return newRule(field,
		fmt.Sprintf("must be at least %v", min),
		"validation.min",
		map[string]any{"min": min},
		func() bool { return value >= min })
}

func MaxNum[T Numeric](field string, value T, max T) Rule {
	return newRule(field,
		fmt.Sprintf("must be at most %v", max),
		"validation.max",
		map[string]any{"max": max},
		func() bool { return value <= max })
}

// RangeNum validates min <= value <= max.
func RangeNum[T Numeric](field string, value T, min T, max T) Rule {
	return newRule(field,
		fmt.Sprintf("must be between %v and %v", min, max),
		"validation.range",
		map[string]any{"min": min, "max": max},
		func() bool { return value >= min && value <= max })
}

func PositiveNum[T Numeric](field string, value T) Rule {
	return newRule(field, "must be greater than zero", "validation.positive", nil, func() bool {
		return value > 0
	})
}

// Percentage validates a percentage in the 0-100 range.
func Percentage(field string, value float64) Rule {
	return newRule(field, "must be a percentage between 0 and 100", "validation.percentage", nil, func() bool {
		return value >= 0 && value <= 100
	})
}
