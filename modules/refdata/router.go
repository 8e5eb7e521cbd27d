package refdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/refdata/binder"
	"github.com/dmitrymomot/refdata/core"
)

// Router mounts the reference-data endpoints.
//
//	r := chi.NewRouter()
//	r.Mount("/api/v1", refdata.Router(svc, core.NewErrorHandler(log)))
//
// errorHandler handles binding and rendering failures; a nil value falls
// back to core.DefaultErrorHandler.
func Router(svc *Service, errorHandler core.ErrorHandler) chi.Router {
	if errorHandler == nil {
		errorHandler = core.DefaultErrorHandler
	}
	r := chi.NewRouter()

	r.Get("/countries", core.Wrap(
		func(ctx core.Context, q ListCountries) core.Response {
			page, err := svc.ListCountries(ctx, q)
			if err != nil {
				return core.JSONError(httpError(err))
			}
			return core.JSON(page.Items, core.WithJSONMeta(map[string]any{
				"page":     page.Page,
				"per_page": page.PerPage,
				"total":    page.Total,
			}))
		},
		core.WithBinder[ListCountries](binder.BindQuery()),
		core.WithErrorHandler[ListCountries](errorHandler),
	))

	r.Post("/countries", create(svc.CreateCountry, errorHandler))
	r.Put("/countries/{id}", update(svc.UpdateCountry, errorHandler))
	r.Post("/agencies", create(svc.CreateAgency, errorHandler))
	r.Post("/partners", create(svc.CreatePartner, errorHandler))
	r.Post("/accounts", create(svc.CreateAccount, errorHandler))
	r.Put("/pricing/{product}", update(svc.SetPricing, errorHandler))
	r.Post("/taxes", create(svc.CreateTax, errorHandler))

	return r
}

// create binds a JSON body and answers 201 with the created entity.
func create[C, E any](fn func(context.Context, C) (E, error), eh core.ErrorHandler) http.HandlerFunc {
	return core.Wrap(
		func(ctx core.Context, cmd C) core.Response {
			entity, err := fn(ctx, cmd)
			if err != nil {
				return core.JSONError(httpError(err))
			}
			return core.JSON(entity, core.WithJSONStatus(http.StatusCreated))
		},
		core.WithBinder[C](binder.BindJSON()),
		core.WithErrorHandler[C](eh),
	)
}

// update binds path parameters and a JSON body and answers 200.
func update[C, E any](fn func(context.Context, C) (E, error), eh core.ErrorHandler) http.HandlerFunc {
	return core.Wrap(
		func(ctx core.Context, cmd C) core.Response {
			entity, err := fn(ctx, cmd)
			if err != nil {
				return core.JSONError(httpError(err))
			}
			return core.JSON(entity)
		},
		core.WithBinders[C](binder.Path(chi.URLParam), binder.BindJSON()),
		core.WithErrorHandler[C](eh),
	)
}

// httpError maps module errors onto client errors. Validation failures pass
// through unchanged; core.JSONError renders them as 422.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("%w: %w", core.ErrNotFound, err)
	case errors.Is(err, ErrConflict):
		return fmt.Errorf("%w: %w", core.ErrConflict, err)
	default:
		return err
	}
}
