package flights

import (
	"context"
	"fmt"
	"strconv"

	"github.com/GaborIreHun/flightmanager/internal/cache"
	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/GaborIreHun/flightmanager/internal/kafka"
	"github.com/GaborIreHun/flightmanager/internal/logger"
	"github.com/GaborIreHun/flightmanager/internal/metrics"
	"github.com/GaborIreHun/flightmanager/internal/repository"
	"github.com/shopspring/decimal"
)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Get(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	ByDestination(ctx context.Context, destination string) ([]domain.Flight, error)
	ByOrigin(ctx context.Context, origin string) ([]domain.Flight, error)
	ByPriceRange(ctx context.Context, r domain.PriceRange) ([]domain.Flight, error)
}

// DiscountLookup resolves a discount code. A nil discount with a nil error
// means no discount applies.
type DiscountLookup interface {
	Lookup(ctx context.Context, code string) (*domain.Discount, error)
}

// FlightCache holds query results keyed by a generation that Invalidate
// advances. GetFlights returns nil flights on a miss together with the
// generation to pass to SetFlights.
type FlightCache interface {
	GetFlights(ctx context.Context, query string) ([]domain.Flight, int64, error)
	SetFlights(ctx context.Context, gen int64, query string, flights []domain.Flight) error
	Invalidate(ctx context.Context) error
}

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// CreateFlightInput is a flight candidate. A nil Price means the field was
// absent from the request.
type CreateFlightInput struct {
	Origin       string
	Destination  string
	Price        *decimal.Decimal
	DiscountCode string
}

type FlightService struct {
	repo        repository.FlightRepository
	discounts   DiscountLookup
	cache       FlightCache
	producer    EventProducer
	eventsTopic string
}

type FlightServiceOption func(*FlightService)

func WithCache(c FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = c
	}
}

func WithEvents(p EventProducer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = p
		s.eventsTopic = topic
	}
}

func NewFlightService(repo repository.FlightRepository, discounts DiscountLookup, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, discounts: discounts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if err := ValidateCreateInput(input); err != nil {
		return nil, err
	}

	discount, err := s.discounts.Lookup(ctx, input.DiscountCode)
	if err != nil {
		return nil, fmt.Errorf("lookup discount %q: %w", input.DiscountCode, err)
	}

	if discount != nil && !domain.HasPricePrecision(discount.Amount) {
		return nil, fmt.Errorf("%w: discount %s for code %q has more than %d decimal places",
			domain.ErrDiscountUnavailable, discount.Amount.String(), input.DiscountCode, domain.PricePlaces)
	}

	flight := &domain.Flight{
		Origin:       input.Origin,
		Destination:  input.Destination,
		Price:        ApplyDiscount(*input.Price, discount),
		DiscountCode: input.DiscountCode,
	}
	if flight.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price %s, discount %s", domain.ErrNegativePrice,
			input.Price.StringFixed(domain.PricePlaces), discount.Amount.String())
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	metrics.FlightsCreated.Inc()

	log := logger.FromContext(ctx)
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("invalidate flight cache")
		}
	}
	if err := s.publish(ctx, kafka.EventFlightCreated, flight); err != nil {
		log.Warn().Err(err).Int64("flight_id", flight.ID).Msg("publish flight event")
	}

	log.Info().
		Int64("flight_id", flight.ID).
		Str("price", flight.Price.StringFixed(domain.PricePlaces)).
		Bool("discounted", discount != nil).
		Msg("flight created")
	return flight, nil
}

// Get reads straight from the store; single flights are not cached.
func (s *FlightService) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.cached(ctx, cache.AllKey(), s.repo.FindAll)
}

func (s *FlightService) ByDestination(ctx context.Context, destination string) ([]domain.Flight, error) {
	return s.cached(ctx, cache.DestinationKey(destination), func(ctx context.Context) ([]domain.Flight, error) {
		return s.repo.FindByDestination(ctx, destination)
	})
}

func (s *FlightService) ByOrigin(ctx context.Context, origin string) ([]domain.Flight, error) {
	return s.cached(ctx, cache.OriginKey(origin), func(ctx context.Context) ([]domain.Flight, error) {
		return s.repo.FindByOrigin(ctx, origin)
	})
}

func (s *FlightService) ByPriceRange(ctx context.Context, r domain.PriceRange) ([]domain.Flight, error) {
	if err := ValidatePriceRange(r); err != nil {
		return nil, err
	}
	return s.cached(ctx, cache.PriceRangeKey(r), func(ctx context.Context) ([]domain.Flight, error) {
		return s.repo.FindByPriceBetween(ctx, r.Min, r.Max)
	})
}

// cached serves query from the cache when possible. Cache errors fall
// through to the repository. Results are stored under the generation read
// before loading, so a create that lands during the load retires them.
func (s *FlightService) cached(ctx context.Context, query string, load func(context.Context) ([]domain.Flight, error)) ([]domain.Flight, error) {
	var (
		gen      int64
		storable bool
	)
	if s.cache != nil {
		hit, g, err := s.cache.GetFlights(ctx, query)
		switch {
		case err != nil:
			logger.FromContext(ctx).Debug().Err(err).Str("query", query).Msg("flight cache read failed")
		case hit != nil:
			return hit, nil
		default:
			gen, storable = g, true
		}
	}

	flights, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if storable {
		if err := s.cache.SetFlights(ctx, gen, query, flights); err != nil {
			logger.FromContext(ctx).Debug().Err(err).Str("query", query).Msg("flight cache write failed")
		}
	}
	return flights, nil
}

func (s *FlightService) publish(ctx context.Context, eventType string, flight *domain.Flight) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	key := strconv.FormatInt(flight.ID, 10)
	return s.producer.Publish(ctx, s.eventsTopic, key, kafka.NewFlightEvent(eventType, flight))
}

// ApplyDiscount subtracts discount from price; a nil discount leaves price
// unchanged.
func ApplyDiscount(price decimal.Decimal, discount *domain.Discount) decimal.Decimal {
	if discount == nil {
		return price
	}
	return price.Sub(discount.Amount)
}

var _ FlightUseCase = (*FlightService)(nil)
