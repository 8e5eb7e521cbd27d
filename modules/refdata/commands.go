package refdata

import "github.com/google/uuid"

// CreateCountry registers a country under its ISO 3166-1 alpha-2 code.
type CreateCountry struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateCountry replaces the mutable attributes of a country.
type UpdateCountry struct {
	Code     string   `path:"id" json:"-"`
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Tags     []string `json:"tags,omitempty"`
}

// CreateAgency registers a travel agency.
type CreateAgency struct {
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	CountryCode string   `json:"countryCode"`
	Website     string   `json:"website,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	APIToken    string   `json:"apiToken,omitempty"`
}

// Contact is the person responsible for a partner.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// APIKey is the credential a partner uses to call back into the platform.
type APIKey struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CreatePartner registers a distribution partner.
type CreatePartner struct {
	ID          uuid.UUID         `json:"-"`
	Name        string            `json:"name"`
	CountryCode string            `json:"countryCode"`
	Contact     Contact           `json:"contact"`
	APIKey      APIKey            `json:"apiKey"`
	Notes       []string          `json:"notes,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Password carries a plain-text password until it is hashed by the handler.
type Password struct {
	Value string `json:"value"`
}

// CreateAccount registers a back-office account.
type CreateAccount struct {
	ID          uuid.UUID `json:"-"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Password    Password  `json:"password"`
}

// PriceTier is a quantity break of a price list.
type PriceTier struct {
	Label       string  `json:"label"`
	MinQuantity int     `json:"minQuantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// SetPricing replaces the price list of a product.
type SetPricing struct {
	Product  string      `path:"product" json:"-"`
	Currency string      `json:"currency"`
	Tiers    []PriceTier `json:"tiers"`
}

// CreateTax registers a tax rate for a country.
type CreateTax struct {
	CountryCode string  `json:"countryCode"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Rate        float64 `json:"rate"`
}

// ListCountries is the paginated country query.
type ListCountries struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}
