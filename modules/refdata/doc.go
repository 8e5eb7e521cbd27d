// Package refdata implements the reference-data administration module:
// countries, agencies, partners, accounts, pricing and taxes.
//
// Every write is a command dispatched through a command.Dispatcher. The
// dispatcher runs the validation stage as middleware, so a command reaches
// its handler only when both its declarative rules (see RegisterRules) and
// the forbidden content scan pass. Rejections surface as
// validator.ValidationErrors and render as 422 responses.
//
// Wiring:
//
//	rules := validator.NewRegistry()
//	refdata.RegisterRules(rules)
//
//	guard := contentguard.DefaultConfig()
//	guard.ExcludedPathSubstrings = append(guard.ExcludedPathSubstrings, refdata.ContentExemptFields...)
//	stage := validation.New(guard, validation.WithRuleRunner(rules))
//
//	bus := command.NewDispatcher(command.WithMiddleware(stage.Middleware()))
//	svc := refdata.NewService(bus, refdata.NewStore())
//	bus.Register(svc.Handlers()...)
//
//	r.Mount("/api/v1", refdata.Router(svc, core.NewErrorHandler(log)))
//
// Persistence is in memory; Store enforces the uniqueness constraints.
package refdata
