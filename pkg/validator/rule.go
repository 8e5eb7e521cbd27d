package validator

// newRule builds a Rule whose error always carries the field name in its
// translation values. extra may be nil.
func newRule(field, message, key string, extra map[string]any, check func() bool) Rule {
	values := map[string]any{"field": field}
	for k, v := range extra {
		values[k] = v
	}
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}
