package refdata

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/refdata/pkg/validator"
)

// TaxCategories lists the accepted CreateTax categories.
var TaxCategories = []string{"standard", "reduced", "zero", "exempt"}

// ContentExemptFields are field names whose values legitimately contain
// characters the forbidden content pattern rejects (addresses, URLs and
// international phone numbers). Deployments add them to the exclusion list.
var ContentExemptFields = []string{"email", "website", "phone"}

const (
	maxNameLen = 100
	maxTags    = 10

	maxPasswordBytes = 72
)

// RegisterRules registers the declarative rule set of every refdata command.
// Field names follow the JSON names so rule and content failures on the same
// field group under one key.
func RegisterRules(r *validator.Registry) {
	validator.RegisterRules(r, func(_ context.Context, cmd CreateCountry) []validator.Rule {
		return countryRules("code", cmd.Code, cmd.Name, cmd.Currency, cmd.Tags)
	})

	validator.RegisterRules(r, func(_ context.Context, cmd UpdateCountry) []validator.Rule {
		return countryRules("id", cmd.Code, cmd.Name, cmd.Currency, cmd.Tags)
	})

	validator.RegisterRules(r, func(_ context.Context, cmd CreateAgency) []validator.Rule {
		rules := []validator.Rule{
			validator.RequiredString("name", cmd.Name),
			validator.MaxLenString("name", cmd.Name, maxNameLen),
			validator.MinLenString("code", cmd.Code, 2),
			validator.MaxLenString("code", cmd.Code, 10),
			validator.ValidCountryCode("countryCode", cmd.CountryCode),
			validator.MaxLenSlice("tags", cmd.Tags, maxTags),
			validator.UniqueSlice("tags", cmd.Tags),
		}
		if cmd.Website != "" {
			rules = append(rules, validator.ValidURL("website", cmd.Website))
		}
		if cmd.APIToken != "" {
			rules = append(rules, validator.MinLenString("apiToken", cmd.APIToken, 24))
		}
		return rules
	})

	validator.RegisterRules(r, func(_ context.Context, cmd CreatePartner) []validator.Rule {
		rules := []validator.Rule{
			validator.RequiredString("name", cmd.Name),
			validator.MaxLenString("name", cmd.Name, maxNameLen),
			validator.ValidCountryCode("countryCode", cmd.CountryCode),
			validator.RequiredString("contact.name", cmd.Contact.Name),
			validator.ValidEmail("contact.email", cmd.Contact.Email),
			validator.RequiredString("apiKey.label", cmd.APIKey.Label),
			validator.MinLenString("apiKey.value", cmd.APIKey.Value, 32),
			validator.MaxLenSlice("notes", cmd.Notes, 20),
			validator.MaxLenMap("metadata", cmd.Metadata, 20),
		}
		if cmd.Contact.Phone != "" {
			rules = append(rules, validator.ValidPhone("contact.phone", cmd.Contact.Phone))
		}
		return rules
	})

	validator.RegisterRules(r, func(_ context.Context, cmd CreateAccount) []validator.Rule {
		return []validator.Rule{
			validator.ValidEmail("email", cmd.Email),
			validator.RequiredString("displayName", cmd.DisplayName),
			validator.MaxLenString("displayName", cmd.DisplayName, 64),
			validator.MinLenString("password.value", cmd.Password.Value, 12),
			{
				// bcrypt rejects input past 72 bytes; runes are not the limit here.
				Check: func() bool { return len(cmd.Password.Value) <= maxPasswordBytes },
				Error: validator.ValidationError{
					Field:             "password.value",
					Message:           fmt.Sprintf("must be at most %d bytes", maxPasswordBytes),
					TranslationKey:    "validation.max_bytes",
					TranslationValues: map[string]any{"max": maxPasswordBytes},
				},
			},
		}
	})

	validator.RegisterRules(r, func(_ context.Context, cmd SetPricing) []validator.Rule {
		rules := []validator.Rule{
			validator.RequiredString("product", cmd.Product),
			validator.MaxLenString("product", cmd.Product, 64),
			validator.ValidCurrencyCode("currency", cmd.Currency),
			validator.RequiredSlice("tiers", cmd.Tiers),
			validator.MaxLenSlice("tiers", cmd.Tiers, 10),
		}
		for i, tier := range cmd.Tiers {
			prefix := fmt.Sprintf("tiers[%d].", i)
			rules = append(rules,
				validator.RequiredString(prefix+"label", tier.Label),
				validator.MinNum(prefix+"minQuantity", tier.MinQuantity, 1),
				validator.PositiveNum(prefix+"unitPrice", tier.UnitPrice),
			)
			if i > 0 {
				prev := cmd.Tiers[i-1].MinQuantity
				rules = append(rules, validator.Rule{
					Check: func() bool { return tier.MinQuantity > prev },
					Error: validator.ValidationError{
						Field:             prefix + "minQuantity",
						Message:           "must be greater than the previous tier",
						TranslationKey:    "validation.tier_order",
						TranslationValues: map[string]any{"previous": prev},
					},
				})
			}
		}
		return rules
	})

	validator.RegisterRules(r, func(_ context.Context, cmd CreateTax) []validator.Rule {
		return []validator.Rule{
			validator.ValidCountryCode("countryCode", cmd.CountryCode),
			validator.RequiredString("name", cmd.Name),
			validator.MaxLenString("name", cmd.Name, maxNameLen),
			validator.OneOfString("category", cmd.Category, TaxCategories),
			validator.Percentage("rate", cmd.Rate),
		}
	})
}

func countryRules(codeField, code, name, currency string, tags []string) []validator.Rule {
	return []validator.Rule{
		validator.ValidCountryCode(codeField, code),
		validator.RequiredString("name", name),
		validator.MaxLenString("name", name, maxNameLen),
		validator.ValidCurrencyCode("currency", currency),
		validator.MaxLenSlice("tags", tags, maxTags),
		validator.UniqueSlice("tags", tags),
	}
}
