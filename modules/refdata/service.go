package refdata

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/refdata/pkg/command"
	"github.com/dmitrymomot/refdata/pkg/requestid"
	"github.com/dmitrymomot/refdata/pkg/validator"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Bus dispatches a command to its handler through the configured middleware.
// *command.Dispatcher satisfies it.
type Bus interface {
	Dispatch(ctx context.Context, cmd any) error
}

// Service exposes the reference-data use cases. Writes go through the bus,
// so every command passes the validation stage before its handler runs.
type Service struct {
	bus          Bus
	store        *Store
	now          func() time.Time
	passwordCost int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPasswordCost sets the bcrypt cost used for account passwords.
func WithPasswordCost(cost int) ServiceOption {
	return func(s *Service) { s.passwordCost = cost }
}

// NewService creates a Service. Register its Handlers on the dispatcher
// behind bus before use.
func NewService(bus Bus, store *Store, opts ...ServiceOption) *Service {
	s := &Service{
		bus:          bus,
		store:        store,
		now:          func() time.Time { return time.Now().UTC() },
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handlers returns the command handlers of the module.
func (s *Service) Handlers() []command.Handler {
	return []command.Handler{
		command.NewHandlerFunc(s.handleCreateCountry),
		command.NewHandlerFunc(s.handleUpdateCountry),
		command.NewHandlerFunc(s.handleCreateAgency),
		command.NewHandlerFunc(s.handleCreatePartner),
		command.NewHandlerFunc(s.handleCreateAccount),
		command.NewHandlerFunc(s.handleSetPricing),
		command.NewHandlerFunc(s.handleCreateTax),
	}
}

func (s *Service) CreateCountry(ctx context.Context, cmd CreateCountry) (Country, error) {
	if err := s.dispatch(ctx, cmd); err != nil {
		return Country{}, err
	}
	return s.store.Country(cmd.Code)
}

func (s *Service) UpdateCountry(ctx context.Context, cmd UpdateCountry) (Country, error) {
	if err := s.dispatch(ctx, cmd); err != nil {
		return Country{}, err
	}
	return s.store.Country(cmd.Code)
}

func (s *Service) CreateAgency(ctx context.Context, cmd CreateAgency) (Agency, error) {
	if err := s.dispatch(ctx, cmd); err != nil {
		return Agency{}, err
	}
	return s.store.Agency(cmd.Code)
}

func (s *Service) CreatePartner(ctx context.Context, cmd CreatePartner) (Partner, error) {
	if cmd.ID == uuid.Nil {
		cmd.ID = uuid.New()
	}
	if err := s.dispatch(ctx, cmd); err != nil {
		return Partner{}, err
	}
	return s.store.Partner(cmd.ID)
}

func (s *Service) CreateAccount(ctx context.Context, cmd CreateAccount) (Account, error) {
	if cmd.ID == uuid.Nil {
		cmd.ID = uuid.New()
	}
	if err := s.dispatch(ctx, cmd); err != nil {
		return Account{}, err
	}
	return s.store.Account(cmd.ID)
}

func (s *Service) SetPricing(ctx context.Context, cmd SetPricing) (PriceList, error) {
	if err := s.dispatch(ctx, cmd); err != nil {
		return PriceList{}, err
	}
	return s.store.PriceList(cmd.Product)
}

func (s *Service) CreateTax(ctx context.Context, cmd CreateTax) (Tax, error) {
	if err := s.dispatch(ctx, cmd); err != nil {
		return Tax{}, err
	}
	return s.store.Tax(cmd.CountryCode, cmd.Name)
}

// ListCountries returns one page of countries. Zero values select the
// first page and the default page size.
func (s *Service) ListCountries(ctx context.Context, q ListCountries) (Page[Country], error) {
	if err := ctx.Err(); err != nil {
		return Page[Country]{}, err
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = defaultPerPage
	}
	if errs := validator.Collect(
		validator.MinNum("page", q.Page, 1),
		validator.RangeNum("per_page", q.PerPage, 1, maxPerPage),
	); len(errs) > 0 {
		return Page[Country]{}, errs
	}
	return s.store.Countries(q.Page, q.PerPage), nil
}

// dispatch reuses the request ID as the command ID so request and command
// log records correlate.
func (s *Service) dispatch(ctx context.Context, cmd any) error {
	if id := requestid.FromContext(ctx); id != "" && command.CommandID(ctx) == "" {
		ctx = command.WithCommandID(ctx, id)
	}
	return s.bus.Dispatch(ctx, cmd)
}

func (s *Service) handleCreateCountry(_ context.Context, cmd CreateCountry) error {
	now := s.now()
	return s.store.InsertCountry(Country{
		Code:      cmd.Code,
		Name:      cmd.Name,
		Currency:  cmd.Currency,
		Tags:      slices.Clone(cmd.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) handleUpdateCountry(_ context.Context, cmd UpdateCountry) error {
	return s.store.UpdateCountry(cmd.Code, func(c *Country) {
		c.Name = cmd.Name
		c.Currency = cmd.Currency
		c.Tags = slices.Clone(cmd.Tags)
		c.UpdatedAt = s.now()
	})
}

func (s *Service) handleCreateAgency(_ context.Context, cmd CreateAgency) error {
	return s.store.InsertAgency(Agency{
		ID:          uuid.New(),
		Code:        cmd.Code,
		Name:        cmd.Name,
		CountryCode: cmd.CountryCode,
		Website:     cmd.Website,
		Tags:        slices.Clone(cmd.Tags),
		HasAPIToken: cmd.APIToken != "",
		CreatedAt:   s.now(),
	})
}

func (s *Service) handleCreatePartner(_ context.Context, cmd CreatePartner) error {
	return s.store.InsertPartner(Partner{
		ID:          cmd.ID,
		Name:        cmd.Name,
		CountryCode: cmd.CountryCode,
		Contact:     cmd.Contact,
		APIKeyLabel: cmd.APIKey.Label,
		Notes:       slices.Clone(cmd.Notes),
		Metadata:    maps.Clone(cmd.Metadata),
		CreatedAt:   s.now(),
	})
}

func (s *Service) handleCreateAccount(_ context.Context, cmd CreateAccount) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password.Value), s.passwordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.InsertAccount(Account{
		ID:           cmd.ID,
		Email:        cmd.Email,
		DisplayName:  cmd.DisplayName,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
}

func (s *Service) handleSetPricing(_ context.Context, cmd SetPricing) error {
	s.store.PutPriceList(PriceList{
		Product:   cmd.Product,
		Currency:  cmd.Currency,
		Tiers:     slices.Clone(cmd.Tiers),
		UpdatedAt: s.now(),
	})
	return nil
}

func (s *Service) handleCreateTax(_ context.Context, cmd CreateTax) error {
	return s.store.InsertTax(Tax{
		ID:          uuid.New(),
		CountryCode: cmd.CountryCode,
		Name:        cmd.Name,
		Category:    cmd.Category,
		Rate:        cmd.Rate,
		CreatedAt:   s.now(),
	})
}
