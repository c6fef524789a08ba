package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *MemoryFlightRepository, flights ...domain.Flight) []domain.Flight {
	t.Helper()
	stored := make([]domain.Flight, 0, len(flights))
	for i := range flights {
		f := flights[i]
		require.NoError(t, repo.Create(context.Background(), &f))
		stored = append(stored, f)
	}
	return stored
}

func flight(origin, destination, price string) domain.Flight {
	return domain.Flight{Origin: origin, Destination: destination, Price: decimal.RequireFromString(price)}
}

func TestMemoryFlightRepository_CreateAssignsIDs(t *testing.T) {
	repo := NewMemoryFlightRepository()
	stored := seed(t, repo, flight("DUB", "JFK", "450"), flight("DUB", "LHR", "99.99"))

	assert.Equal(t, int64(1), stored[0].ID)
	assert.Equal(t, int64(2), stored[1].ID)
	assert.False(t, stored[0].CreatedAt.IsZero())
}

func TestMemoryFlightRepository_FindAllEmpty(t *testing.T) {
	repo := NewMemoryFlightRepository()

	flights, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, flights)
	assert.Empty(t, flights)
}

func TestMemoryFlightRepository_FindAllKeepsOrderAndIDs(t *testing.T) {
	repo := NewMemoryFlightRepository()
	stored := seed(t, repo, flight("DUB", "JFK", "450"), flight("SNN", "BOS", "300"), flight("ORK", "JFK", "500"))

	first, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	second, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, stored, first)
	assert.Equal(t, first, second)
}

func TestMemoryFlightRepository_FindByDestinationIsExact(t *testing.T) {
	repo := NewMemoryFlightRepository()
	seed(t, repo, flight("DUB", "JFK", "450"), flight("SNN", "jfk", "300"), flight("ORK", "JFK", "500"), flight("DUB", "JFKX", "10"))

	flights, err := repo.FindByDestination(context.Background(), "JFK")
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, int64(1), flights[0].ID)
	assert.Equal(t, int64(3), flights[1].ID)

	none, err := repo.FindByDestination(context.Background(), "CDG")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryFlightRepository_FindByOrigin(t *testing.T) {
	repo := NewMemoryFlightRepository()
	seed(t, repo, flight("DUB", "JFK", "450"), flight("SNN", "BOS", "300"), flight("DUB", "LHR", "80"))

	flights, err := repo.FindByOrigin(context.Background(), "DUB")
	require.NoError(t, err)
	require.Len(t, flights, 2)
	for _, f := range flights {
		assert.Equal(t, "DUB", f.Origin)
	}
}

func TestMemoryFlightRepository_FindByPriceBetweenInclusive(t *testing.T) {
	repo := NewMemoryFlightRepository()
	seed(t, repo,
		flight("DUB", "JFK", "100.00"),
		flight("DUB", "BOS", "500.00"),
		flight("DUB", "LHR", "99.99"),
		flight("DUB", "CDG", "500.01"),
		flight("DUB", "AMS", "250"),
	)

	flights, err := repo.FindByPriceBetween(context.Background(), decimal.NewFromInt(100), decimal.NewFromInt(500))
	require.NoError(t, err)

	destinations := make([]string, 0, len(flights))
	for _, f := range flights {
		destinations = append(destinations, f.Destination)
	}
	assert.Equal(t, []string{"JFK", "BOS", "AMS"}, destinations)
}

func TestMemoryFlightRepository_FindByPriceBetweenInvertedIsEmpty(t *testing.T) {
	repo := NewMemoryFlightRepository()
	seed(t, repo, flight("DUB", "JFK", "300"))

	flights, err := repo.FindByPriceBetween(context.Background(), decimal.NewFromInt(500), decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestMemoryFlightRepository_ConcurrentCreateUniqueIDs(t *testing.T) {
	repo := NewMemoryFlightRepository()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := flight("DUB", "JFK", "100")
			_ = repo.Create(context.Background(), &f)
		}()
	}
	wg.Wait()

	flights, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, flights, n)

	seen := make(map[int64]bool, n)
	for _, f := range flights {
		assert.False(t, seen[f.ID], "duplicate id %d", f.ID)
		seen[f.ID] = true
	}
}

func TestMemoryFlightRepository_GetByID(t *testing.T) {
	repo := NewMemoryFlightRepository()
	stored := seed(t, repo, flight("DUB", "JFK", "450"), flight("SNN", "BOS", "100"))

	got, err := repo.GetByID(context.Background(), stored[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "BOS", got.Destination)

	got.Destination = "mutated"
	again, err := repo.GetByID(context.Background(), stored[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "BOS", again.Destination)

	for _, id := range []int64{0, -1, 3} {
		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrFlightNotFound, id)
	}
}
