package refdata

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store keeps reference data in memory. It is safe for concurrent use.
// Uniqueness checks and writes happen under one lock, so two concurrent
// creates of the same key cannot both succeed.
type Store struct {
	mu        sync.RWMutex
	countries map[string]Country
	agencies  map[string]Agency
	partners  map[uuid.UUID]Partner
	accounts  map[uuid.UUID]Account
	pricing   map[string]PriceList
	taxes     map[uuid.UUID]Tax
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		countries: make(map[string]Country),
		agencies:  make(map[string]Agency),
		partners:  make(map[uuid.UUID]Partner),
		accounts:  make(map[uuid.UUID]Account),
		pricing:   make(map[string]PriceList),
		taxes:     make(map[uuid.UUID]Tax),
	}
}

// Ping reports whether the store can serve requests.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Country(code string) (Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.countries[code]
	if !ok {
		return Country{}, fmt.Errorf("%w: country %s", ErrNotFound, code)
	}
	return c, nil
}

// Countries returns a page of countries ordered by code. page is 1-based.
func (s *Store) Countries(page, perPage int) Page[Country] {
	s.mu.RLock()
	all := slices.SortedFunc(maps.Values(s.countries), func(a, b Country) int {
		return cmp.Compare(a.Code, b.Code)
	})
	s.mu.RUnlock()

	out := Page[Country]{Items: []Country{}, Page: page, PerPage: perPage, Total: len(all)}
	if page < 1 || perPage < 1 {
		return out
	}
	// Compare page numbers first: (page-1)*perPage overflows for large pages.
	if pages := (len(all) + perPage - 1) / perPage; page > pages {
		return out
	}
	start := (page - 1) * perPage
	out.Items = all[start:min(start+perPage, len(all))]
	return out
}

func (s *Store) InsertCountry(c Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[c.Code]; ok {
		return fmt.Errorf("%w: country %s", ErrConflict, c.Code)
	}
	s.countries[c.Code] = c
	return nil
}

// UpdateCountry applies fn to the stored country under the write lock.
func (s *Store) UpdateCountry(code string, fn func(*Country)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.countries[code]
	if !ok {
		return fmt.Errorf("%w: country %s", ErrNotFound, code)
	}
	fn(&c)
	s.countries[code] = c
	return nil
}

func (s *Store) Agency(code string) (Agency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agencies[code]
	if !ok {
		return Agency{}, fmt.Errorf("%w: agency %s", ErrNotFound, code)
	}
	return a, nil
}

func (s *Store) InsertAgency(a Agency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agencies[a.Code]; ok {
		return fmt.Errorf("%w: agency %s", ErrConflict, a.Code)
	}
	if _, ok := s.countries[a.CountryCode]; !ok {
		return fmt.Errorf("%w: country %s", ErrNotFound, a.CountryCode)
	}
	s.agencies[a.Code] = a
	return nil
}

func (s *Store) Partner(id uuid.UUID) (Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.partners[id]
	if !ok {
		return Partner{}, fmt.Errorf("%w: partner %s", ErrNotFound, id)
	}
	return p, nil
}

// InsertPartner enforces case-insensitive unique partner names.
func (s *Store) InsertPartner(p Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.partners {
		if strings.EqualFold(existing.Name, p.Name) {
			return fmt.Errorf("%w: partner %s", ErrConflict, p.Name)
		}
	}
	if _, ok := s.countries[p.CountryCode]; !ok {
		return fmt.Errorf("%w: country %s", ErrNotFound, p.CountryCode)
	}
	s.partners[p.ID] = p
	return nil
}

func (s *Store) Account(id uuid.UUID) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	return a, nil
}

// InsertAccount enforces case-insensitive unique emails.
func (s *Store) InsertAccount(a Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return fmt.Errorf("%w: account %s", ErrConflict, a.Email)
		}
	}
	s.accounts[a.ID] = a
	return nil
}

func (s *Store) PriceList(product string) (PriceList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pricing[product]
	if !ok {
		return PriceList{}, fmt.Errorf("%w: price list %s", ErrNotFound, product)
	}
	return p, nil
}

// PutPriceList creates or replaces the price list of a product.
func (s *Store) PutPriceList(p PriceList) {
	s.mu.Lock()
	s.pricing[p.Product] = p
	s.mu.Unlock()
}

// Tax looks a tax up by country and case-insensitive name.
func (s *Store) Tax(countryCode, name string) (Tax, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.taxes {
		if t.CountryCode == countryCode && strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Tax{}, fmt.Errorf("%w: tax %s/%s", ErrNotFound, countryCode, name)
}

// InsertTax enforces unique names per country.
func (s *Store) InsertTax(t Tax) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[t.CountryCode]; !ok {
		return fmt.Errorf("%w: country %s", ErrNotFound, t.CountryCode)
	}
	for _, existing := range s.taxes {
		if existing.CountryCode == t.CountryCode && strings.EqualFold(existing.Name, t.Name) {
			return fmt.Errorf("%w: tax %s/%s", ErrConflict, t.CountryCode, t.Name)
		}
	}
	s.taxes[t.ID] = t
	return nil
}
