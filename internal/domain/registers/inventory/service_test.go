package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
)

// fakeRepo keeps balances in memory, keyed by item.
type fakeRepo struct {
	balances map[id.ID]Balance
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{balances: make(map[id.ID]Balance)}
}

func (f *fakeRepo) GetByItem(ctx context.Context, itemID id.ID) (Balance, error) {
	b, ok := f.balances[itemID]
	if !ok {
		return Balance{}, apperror.NewNotFound("inventory", itemID.String())
	}
	return b, nil
}

func (f *fakeRepo) GetByItemForUpdate(ctx context.Context, itemID id.ID) (Balance, error) {
	return f.GetByItem(ctx, itemID)
}

func (f *fakeRepo) Create(ctx context.Context, balance Balance) error {
	f.balances[balance.RawsItemID] = balance
	return nil
}

func (f *fakeRepo) SetQty(ctx context.Context, balanceID id.ID, qty int64) error {
	for k, b := range f.balances {
		if b.ID == balanceID {
			b.Qty = qty
			f.balances[k] = b
			return nil
		}
	}
	return apperror.NewNotFound("inventory", balanceID.String())
}

func (f *fakeRepo) ListStatus(ctx context.Context, keyword string) ([]StatusRow, error) {
	return nil, nil
}

func TestIncrease_CreatesRowOnFirstInbound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	itemID := id.New()

	require.NoError(t, svc.Increase(context.Background(), itemID, 50))

	qty, err := svc.GetBalance(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), qty)
}

func TestIncrease_AddsToExistingBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	itemID := id.New()

	require.NoError(t, svc.Increase(context.Background(), itemID, 50))
	require.NoError(t, svc.Increase(context.Background(), itemID, 30))

	qty, err := svc.GetBalance(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(80), qty)
}

func TestIncrease_RejectsNonPositiveQty(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Increase(context.Background(), id.New(), 0)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestDecrease_ExactBalanceDrainsToZero(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	itemID := id.New()

	require.NoError(t, svc.Increase(context.Background(), itemID, 50))
	require.NoError(t, svc.Decrease(context.Background(), itemID, 50))

	qty, err := svc.GetBalance(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestDecrease_OverdraftRejectedAndBalanceUnchanged(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	itemID := id.New()

	require.NoError(t, svc.Increase(context.Background(), itemID, 50))

	err := svc.Decrease(context.Background(), itemID, 51)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	qty, err := svc.GetBalance(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), qty)
}

func TestDecrease_UnknownItemNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Decrease(context.Background(), id.New(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetBalance_ZeroForMissingRow(t *testing.T) {
	svc := NewService(newFakeRepo())

	qty, err := svc.GetBalance(context.Background(), id.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}
