package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	FindAll(ctx context.Context) ([]domain.Flight, error)
	FindByDestination(ctx context.Context, destination string) ([]domain.Flight, error)
	FindByOrigin(ctx context.Context, origin string) ([]domain.Flight, error)
	FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]domain.Flight, error)
	Ping(ctx context.Context) error
}

// Prices travel as text so NUMERIC values never pass through float64.
const selectFlights = `SELECT id, origin, destination, price::text, COALESCE(discount_code, ''), created_at FROM flights`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO flights (origin, destination, price, discount_code) VALUES ($1, $2, $3::numeric, $4) RETURNING id, created_at`,
		flight.Origin, flight.Destination, flight.Price.StringFixed(domain.PricePlaces), nullIfEmpty(flight.DiscountCode))
	if err := row.Scan(&flight.ID, &flight.CreatedAt); err != nil {
		return fmt.Errorf("insert flight: %w", err)
	}
	return nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, selectFlights+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", id, domain.ErrFlightNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	return r.query(ctx, selectFlights+` ORDER BY id`)
}

func (r *PGFlightRepository) FindByDestination(ctx context.Context, destination string) ([]domain.Flight, error) {
	return r.query(ctx, selectFlights+` WHERE destination = $1 ORDER BY id`, destination)
}

func (r *PGFlightRepository) FindByOrigin(ctx context.Context, origin string) ([]domain.Flight, error) {
	return r.query(ctx, selectFlights+` WHERE origin = $1 ORDER BY id`, origin)
}

func (r *PGFlightRepository) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]domain.Flight, error) {
	return r.query(ctx, selectFlights+` WHERE price BETWEEN $1::numeric AND $2::numeric ORDER BY id`, min.String(), max.String())
}

func (r *PGFlightRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PGFlightRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	return flights, nil
}

func scanFlight(row pgx.Row) (domain.Flight, error) {
	var (
		f     domain.Flight
		price string
	)
	if err := row.Scan(&f.ID, &f.Origin, &f.Destination, &price, &f.DiscountCode, &f.CreatedAt); err != nil {
		return domain.Flight{}, fmt.Errorf("scan flight: %w", err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("scan flight %d price %q: %w", f.ID, price, err)
	}
	f.Price = p
	return f, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ FlightRepository = (*PGFlightRepository)(nil)
