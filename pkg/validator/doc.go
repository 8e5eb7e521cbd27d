// Package validator provides declarative validation rules and the error
// types shared by every validation source.
//
// A Rule pairs a Check function with the ValidationError reported when the
// check fails. Rules are plain values; building them has no side effects:
//
//	errs := validator.Collect(
//		validator.RequiredString("name", cmd.Name),
//		validator.ValidCountryCode("code", cmd.Code),
//		validator.MaxLenSlice("tags", cmd.Tags, 10),
//	)
//
// # Registry
//
// Registry maps command types to rule sets and is the declarative rule
// runner used by the validation stage:
//
//	reg := validator.NewRegistry()
//	validator.RegisterRules(reg, func(ctx context.Context, cmd CreateCountry) []validator.Rule {
//		return []validator.Rule{validator.RequiredString("name", cmd.Name)}
//	})
//	errs, err := reg.Run(ctx, cmd) // nil, nil for commands without rules
//
// # Errors
//
// ValidationErrors is an ordered list that implements error. Each entry has
// a Field (a plain name or a property path such as "tiers[0].label"), a
// human-readable Message, a TranslationKey with TranslationValues for
// localized rendering, and a Source telling which component produced it.
// errors.Is(err, ErrValidationFailed) holds for any ValidationErrors, and
// ExtractValidationErrors unwraps them from an error chain.
package validator
