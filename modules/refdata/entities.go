package refdata

import (
	"time"

	"github.com/google/uuid"
)

type Country struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Agency struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	CountryCode string    `json:"countryCode"`
	Website     string    `json:"website,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	HasAPIToken bool      `json:"hasApiToken"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Partner struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	CountryCode string            `json:"countryCode"`
	Contact     Contact           `json:"contact"`
	APIKeyLabel string            `json:"apiKeyLabel"`
	Notes       []string          `json:"notes,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Account never exposes its password hash.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PriceList struct {
	Product   string      `json:"product"`
	Currency  string      `json:"currency"`
	Tiers     []PriceTier `json:"tiers"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type Tax struct {
	ID          uuid.UUID `json:"id"`
	CountryCode string    `json:"countryCode"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Rate        float64   `json:"rate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}
