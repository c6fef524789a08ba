package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/shopspring/decimal"
)

// MemoryFlightRepository keeps flights in process memory. Records are held in
// insertion order, which is also id order.
type MemoryFlightRepository struct {
	mu      sync.RWMutex
	flights []domain.Flight
	nextID  int64
	now     func() time.Time
}

func NewMemoryFlightRepository() *MemoryFlightRepository {
	return &MemoryFlightRepository{nextID: 1, now: time.Now}
}

func (r *MemoryFlightRepository) Create(_ context.Context, flight *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flight.ID = r.nextID
	flight.CreatedAt = r.now().UTC()
	flight.Price = flight.Price.Round(domain.PricePlaces)
	r.nextID++
	r.flights = append(r.flights, *flight)
	return nil
}

func (r *MemoryFlightRepository) GetByID(_ context.Context, id int64) (*domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// ids start at 1 and are never reused, so id-1 is the slice index.
	if id < 1 || id > int64(len(r.flights)) {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrFlightNotFound)
	}
	f := r.flights[id-1]
	return &f, nil
}

func (r *MemoryFlightRepository) FindAll(_ context.Context) ([]domain.Flight, error) {
	return r.filter(func(domain.Flight) bool { return true }), nil
}

func (r *MemoryFlightRepository) FindByDestination(_ context.Context, destination string) ([]domain.Flight, error) {
	return r.filter(func(f domain.Flight) bool { return f.Destination == destination }), nil
}

func (r *MemoryFlightRepository) FindByOrigin(_ context.Context, origin string) ([]domain.Flight, error) {
	return r.filter(func(f domain.Flight) bool { return f.Origin == origin }), nil
}

func (r *MemoryFlightRepository) FindByPriceBetween(_ context.Context, min, max decimal.Decimal) ([]domain.Flight, error) {
	rng := domain.PriceRange{Min: min, Max: max}
	return r.filter(func(f domain.Flight) bool { return rng.Contains(f.Price) }), nil
}

func (r *MemoryFlightRepository) Ping(context.Context) error {
	return nil
}

func (r *MemoryFlightRepository) filter(keep func(domain.Flight) bool) []domain.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Flight, 0)
	for _, f := range r.flights {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

var _ FlightRepository = (*MemoryFlightRepository)(nil)
