package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "tickets/internal/domain/order"
	"tickets/internal/repository"
)

var db *sqlx.DB
var getDbOnce sync.Once

func getDb(t *testing.T) *sqlx.DB {
	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL not set")
	}
	getDbOnce.Do(func() {
		var err error
		db, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}
	})
	return db
}

func setupTestDB(t *testing.T) {
	db := getDb(t)
	require.NoError(t, repository.InitializeDBSchema(db))

	_, err := db.Exec("TRUNCATE TABLE orders")
	require.NoError(t, err)
}

func newOrder(reference string) *domain.Order {
	return &domain.Order{
		ID:            uuid.NewString(),
		Reference:     reference,
		UserName:      "Jane Doe",
		Phone:         "+233000000",
		Email:         "jane@example.com",
		EventName:     "Harbour Nights",
		TicketID:      "77",
		TicketType:    "VIP",
		Quantity:      1,
		Price:         decimal.RequireFromString("150.00"),
		Currency:      "GHS",
		PaymentStatus: "COMPLETED",
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestOrdersRepo_CreateAndGet_Integration(t *testing.T) {
	setupTestDB(t)
	repo := repository.NewOrdersRepo(getDb(t))
	ctx := context.Background()

	want := newOrder("ref-abc123")
	require.NoError(t, repo.Create(ctx, want))

	got, err := repo.GetByReference(ctx, "ref-abc123")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.UserName, got.UserName)
	assert.True(t, want.Price.Equal(got.Price))
}

func TestOrdersRepo_GetMissing_Integration(t *testing.T) {
	setupTestDB(t)
	repo := repository.NewOrdersRepo(getDb(t))

	_, err := repo.GetByReference(context.Background(), "ref-missing")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrdersRepo_ListPagination_Integration(t *testing.T) {
	setupTestDB(t)
	repo := repository.NewOrdersRepo(getDb(t))
	ctx := context.Background()

	for _, ref := range []string{"ref-1", "ref-2", "ref-3"} {
		require.NoError(t, repo.Create(ctx, newOrder(ref)))
	}

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
