package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var (
	// E.164 with optional leading plus
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

	upperAlpha2 = regexp.MustCompile(`^[A-Z]{2}$`)
	upperAlpha3 = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ValidEmail validates a bare RFC 5322 address; display names are rejected.
func ValidEmail(field, value string) Rule {
	return newRule(field, "must be a valid email address", "validation.email", nil, func() bool {
		if strings.TrimSpace(value) == "" {
			return false
		}
		addr, err := mail.ParseAddress(value)
		return err == nil && addr.Address == value
	})
}

// ValidURL validates an absolute http or https URL.
func ValidURL(field, value string) Rule {
	return newRule(field, "must be a valid URL", "validation.url", nil, func() bool {
		u, err := url.Parse(value)
		if err != nil || u.Host == "" {
			return false
		}
		return u.Scheme == "http" || u.Scheme == "https"
	})
}

// ValidPhone validates an international phone number. Spaces and dashes are ignored.
func ValidPhone(field, value string) Rule {
	return newRule(field, "must be a valid phone number in international format", "validation.phone", nil, func() bool {
		cleaned := strings.NewReplacer(" ", "", "-", "").Replace(value)
		return phoneRegex.MatchString(cleaned)
	})
}

// ValidCountryCode validates an upper-case ISO 3166-1 alpha-2 country code.
func ValidCountryCode(field, value string) Rule {
	return newRule(field, "must be a valid ISO 3166-1 alpha-2 country code", "validation.country_code", nil, func() bool {
		if !upperAlpha2.MatchString(value) {
			return false
		}
		region, err := language.ParseRegion(value)
		return err == nil && region.IsCountry()
	})
}

// ValidCurrencyCode validates an upper-case ISO 4217 currency code.
func ValidCurrencyCode(field, value string) Rule {
	return newRule(field, "must be a valid ISO 4217 currency code", "validation.currency_code", nil, func() bool {
		if !upperAlpha3.MatchString(value) {
			return false
		}
		_, err := currency.ParseISO(value)
		return err == nil
	})
}

func ValidUUID(field, value string) Rule {
	return newRule(field, "must be a valid UUID", "validation.uuid", nil, func() bool {
		if len(value) != 36 {
			return false
		}
		_, err := uuid.Parse(value)
		return err == nil
	})
}

func RequiredUUID(field string, value uuid.UUID) Rule {
	return newRule(field, "field is required", "validation.required", nil, func() bool {
		return value != uuid.Nil
	})
}
