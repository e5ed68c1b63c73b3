package services

import (
	"backend/models"
)

// Fabric price bounds in VND.
const (
	FabricPriceMin int64 = 1_000
	FabricPriceMax int64 = 10_000_000
)

// Submission messages shown on the price-matrix dialog's action button.
const (
	MsgSelectFabric     = "Select a Fabric"
	MsgCompletePrices   = "Complete All Prices"
	MsgFixInvalidPrices = "Fix Invalid Prices"
	MsgReadyToSubmit    = "Add to Store"
)

// FabricPriceValidation is the outcome of validating one fabric's price matrix.
type FabricPriceValidation struct {
	IsValid     bool              `json:"isValid"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors"`        // size enum name -> message
	Missing     []string          `json:"missing,omitempty"`  // canonical sizes with no entry yet
}

// RequiredSizes returns the size rows a fabric must be priced for, grouped by
// canonical size name so gender variants collapse into one required entry.
// Sizes whose type matches the fabric's primary type are required; when none
// match, every size becomes required. The fallback silently broadens the
// requirement and mirrors the console behavior.
func RequiredSizes(fabric models.Fabric, sizes []models.SizePrice) map[string][]models.SizePrice {
	primary := fabric.PrimaryType()
	var filtered []models.SizePrice
	for _, s := range sizes {
		if s.Type == primary {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		filtered = sizes
	}
	groups := make(map[string][]models.SizePrice)
	for _, s := range filtered {
		groups[s.Size] = append(groups[s.Size], s)
	}
	return groups
}

// ValidateFabricPrices checks the entered price strings for a fabric against
// its required canonical sizes and the platform price bounds. Entries are
// keyed by size enum name and may carry locale separators; an absent or empty
// entry counts as missing but produces no field error, so untouched inputs
// stay clean. Validity requires every required size entered and zero field
// errors.
func ValidateFabricPrices(fabric *models.Fabric, sizes []models.SizePrice, entered map[string]string) FabricPriceValidation {
	result := FabricPriceValidation{FieldErrors: make(map[string]string)}
	if fabric == nil {
		result.Message = MsgSelectFabric
		return result
	}

	groups := RequiredSizes(*fabric, sizes)
	var canonical []string
	for size := range groups {
		canonical = append(canonical, size)
	}
	canonical = SortSizes(canonical)

	for _, size := range canonical {
		enumName, value := enteredVariant(groups[size], entered)
		if value == "" {
			result.Missing = append(result.Missing, size)
			continue
		}
		if msg := checkPriceString(value); msg != "" {
			result.FieldErrors[enumName] = msg
		}
	}

	switch {
	case len(result.Missing) > 0:
		result.Message = MsgCompletePrices
	case len(result.FieldErrors) > 0:
		result.Message = MsgFixInvalidPrices
	default:
		result.IsValid = true
		result.Message = MsgReadyToSubmit
	}
	return result
}

// enteredVariant finds the first gender variant of a canonical size that has a
// non-empty entry. When none do it reports the first variant's enum name so
// errors and inputs stay addressable.
func enteredVariant(variants []models.SizePrice, entered map[string]string) (string, string) {
	for _, v := range variants {
		if value, ok := entered[v.EnumName]; ok && value != "" {
			return v.EnumName, value
		}
	}
	if len(variants) > 0 {
		return variants[0].EnumName, ""
	}
	return "", ""
}

// checkPriceString validates a single entered price. The string may carry
// grouping separators; it must reduce to a positive integer inside the
// platform bounds.
func checkPriceString(value string) string {
	price, err := ParseVND(value)
	if err != nil || price <= 0 {
		return "Enter a valid price"
	}
	if price < FabricPriceMin {
		return "Minimum price is " + FormatVND(FabricPriceMin)
	}
	if price > FabricPriceMax {
		return "Maximum price is " + FormatVND(FabricPriceMax)
	}
	return ""
}

// ValidateSizePriceEntries applies the same bounds to an already-parsed
// update payload on the server side. It returns field errors keyed by size
// enum name.
func ValidateSizePriceEntries(entries []models.SizePriceEntry) map[string]string {
	errors := make(map[string]string)
	for _, entry := range entries {
		if entry.Price <= 0 {
			errors[entry.SizeEnumName] = "Enter a valid price"
			continue
		}
		if entry.Price < FabricPriceMin {
			errors[entry.SizeEnumName] = "Minimum price is " + FormatVND(FabricPriceMin)
			continue
		}
		if entry.Price > FabricPriceMax {
			errors[entry.SizeEnumName] = "Maximum price is " + FormatVND(FabricPriceMax)
		}
	}
	return errors
}
