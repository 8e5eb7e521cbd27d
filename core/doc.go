// Package core is the HTTP boundary of the service: typed handlers, request
// binding, and JSON rendering of results and errors.
//
// Handlers are plain functions from a bound request value to a Response:
//
//	create := func(ctx core.Context, req refdata.CreateCountry) core.Response {
//		country, err := svc.CreateCountry(ctx, req)
//		if err != nil {
//			return core.JSONError(err)
//		}
//		return core.JSON(country, core.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/countries", core.Wrap(create,
//		core.WithBinder[refdata.CreateCountry](binder.BindJSON()),
//		core.WithErrorHandler[refdata.CreateCountry](core.NewErrorHandler(log)),
//	))
//
// JSONError maps a validation rejection to 422 Unprocessable Entity. The error
// body groups messages by field or property path under "details" and keeps
// the ordered list under "failures". HTTPError values keep their own status;
// anything else becomes a 500 that does not leak the error text.
package core
