// Package command provides a synchronous command bus.
//
// A command is any value, usually a struct describing one intended change
// (CreateCountry, SetPricing). Its name is the type name, so one Handler is
// registered per command type. Middleware wraps every handler, which is
// where cross-cutting checks such as request validation run before the
// handler is reached:
//
//	d := command.NewDispatcher(
//		command.WithLogger(log),
//		command.WithMiddleware(command.LoggingMiddleware(log), stage.Middleware()),
//	)
//	d.Register(command.NewHandlerFunc(svc.CreateCountry))
//
//	if err := d.Dispatch(ctx, refdata.CreateCountry{Code: "FR"}); err != nil {
//		if errs := validator.ExtractValidationErrors(err); errs != nil {
//			// rejected before the handler ran
//		}
//	}
//
// Dispatch stores the command ID and name in the context. LogExtractors
// turns them into log attributes.
package command
