package api

import (
	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/GaborIreHun/flightmanager/internal/service/flights"
	"github.com/shopspring/decimal"
)

// createFlightRequest accepts price as a JSON number or a numeric string.
type createFlightRequest struct {
	Origin       string           `json:"origin"`
	Destination  string           `json:"destination"`
	Price        *decimal.Decimal `json:"price"`
	DiscountCode string           `json:"discountCode"`
}

func (r createFlightRequest) toInput() flights.CreateFlightInput {
	return flights.CreateFlightInput{
		Origin:       r.Origin,
		Destination:  r.Destination,
		Price:        r.Price,
		DiscountCode: r.DiscountCode,
	}
}

type flightResponse struct {
	ID           int64  `json:"id"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Price        string `json:"price"`
	DiscountCode string `json:"discountCode"`
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:           f.ID,
		Origin:       f.Origin,
		Destination:  f.Destination,
		Price:        f.Price.StringFixed(domain.PricePlaces),
		DiscountCode: f.DiscountCode,
	}
}

func toFlightResponses(list []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(list))
	for i := range list {
		out = append(out, toFlightResponse(&list[i]))
	}
	return out
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
