package flights

import (
	"fmt"
	"strings"

	"github.com/GaborIreHun/flightmanager/internal/domain"
)

// ValidateCreateInput rejects candidates with blank locations or a price that
// is missing, negative, too large or too precise.
func ValidateCreateInput(in CreateFlightInput) error {
	if strings.TrimSpace(in.Origin) == "" {
		return domain.NewValidationError("origin", "is required")
	}
	if strings.TrimSpace(in.Destination) == "" {
		return domain.NewValidationError("destination", "is required")
	}
	if in.Price == nil {
		return domain.NewValidationError("price", "is required")
	}
	if in.Price.IsNegative() {
		return domain.NewValidationError("price", "must not be negative")
	}
	if in.Price.GreaterThan(domain.MaxPrice) {
		return domain.NewValidationError("price", "must not exceed "+domain.MaxPrice.StringFixed(domain.PricePlaces))
	}
	if !domain.HasPricePrecision(*in.Price) {
		return domain.NewValidationError("price", fmt.Sprintf("must have at most %d decimal places", domain.PricePlaces))
	}
	return nil
}

// ValidatePriceRange rejects negative bounds. Min greater than Max is allowed
// and matches nothing.
func ValidatePriceRange(r domain.PriceRange) error {
	if r.Min.IsNegative() {
		return fmt.Errorf("%w: minPrice must not be negative", domain.ErrInvalidPriceRange)
	}
	if r.Max.IsNegative() {
		return fmt.Errorf("%w: maxPrice must not be negative", domain.ErrInvalidPriceRange)
	}
	return nil
}

