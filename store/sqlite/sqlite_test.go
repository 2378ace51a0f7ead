package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/deposit-engine/deposit"
	"github.com/warp/deposit-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testDeposit(userID deposit.UserID) deposit.FixedDeposit {
	start := deposit.NewDate(2024, time.January, 1)
	return deposit.FixedDeposit{
		UserID:          userID,
		Amount:          dec("10000.55"),
		Scheme:          deposit.SchemePremiumSaver,
		InterestRate:    dec("7"),
		TenureMonths:    12,
		StartDate:       start,
		MaturityDate:    start.AddMonths(12),
		Status:          deposit.StatusActive,
		AccruedInterest: dec("0"),
		CreatedAt:       time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveUser(ctx, deposit.User{Name: "Asha Rao", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "store must assign an id")

	got, err := store.GetUser(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Asha Rao", got.Name)
	assert.Equal(t, "asha@example.com", got.Email)
}

func TestGetUser_MissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetUser(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDepositRoundTrip_PreservesDecimals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.SaveUser(ctx, deposit.User{Name: "Asha Rao"})
	require.NoError(t, err)

	saved, err := store.SaveDeposit(ctx, testDeposit(user.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := store.GetDeposit(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, got.Amount.Equal(dec("10000.55")), "amount %v", got.Amount)
	assert.True(t, got.InterestRate.Equal(dec("7")), "rate %v", got.InterestRate)
	assert.Equal(t, deposit.SchemePremiumSaver, got.Scheme)
	assert.Equal(t, 12, got.TenureMonths)
	assert.Equal(t, "2024-01-01", got.StartDate.String())
	assert.Equal(t, "2025-01-01", got.MaturityDate.String())
	assert.Equal(t, deposit.StatusActive, got.Status)
	assert.Nil(t, got.BrokenDate)
	assert.True(t, got.CreatedAt.Equal(time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)))
}

func TestGetDeposit_MissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetDeposit(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListDepositsByUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice, err := store.SaveUser(ctx, deposit.User{Name: "Alice"})
	require.NoError(t, err)
	bob, err := store.SaveUser(ctx, deposit.User{Name: "Bob"})
	require.NoError(t, err)

	_, err = store.SaveDeposit(ctx, testDeposit(alice.ID))
	require.NoError(t, err)
	_, err = store.SaveDeposit(ctx, testDeposit(alice.ID))
	require.NoError(t, err)

	got, err := store.ListDepositsByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.ListDepositsByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateDeposit_LifecycleColumns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.SaveUser(ctx, deposit.User{Name: "Asha Rao"})
	require.NoError(t, err)
	saved, err := store.SaveDeposit(ctx, testDeposit(user.ID))
	require.NoError(t, err)

	broken := deposit.NewDate(2024, time.March, 1)
	saved.Status = deposit.StatusBroken
	saved.BrokenDate = &broken
	saved.AccruedInterest = dec("115.07")

	require.NoError(t, store.UpdateDeposit(ctx, *saved))

	got, err := store.GetDeposit(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, deposit.StatusBroken, got.Status)
	require.NotNil(t, got.BrokenDate)
	assert.Equal(t, "2024-03-01", got.BrokenDate.String())
	assert.True(t, got.AccruedInterest.Equal(dec("115.07")))
}

func TestUpdateDeposit_MissingRow(t *testing.T) {
	store := newTestStore(t)

	fd := testDeposit("u1")
	fd.ID = "missing"

	err := store.UpdateDeposit(context.Background(), fd)

	require.ErrorIs(t, err, deposit.ErrDepositNotFound)
}
