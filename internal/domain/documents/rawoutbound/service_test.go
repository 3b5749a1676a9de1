package rawoutbound

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain/registers/inventory"
	"coatline/pkg/numerator"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type seqRow struct{ val int64 }

func (r seqRow) Scan(dest ...any) error {
	if ptr, ok := dest[0].(*int64); ok {
		*ptr = r.val
		return nil
	}
	return fmt.Errorf("unexpected scan dest")
}

type seqQuerier struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := args[0].(string)
	q.counters[key]++
	return seqRow{val: q.counters[key]}
}

type fakeDocRepo struct {
	docs []*RawOutbound
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *RawOutbound) error {
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, docID id.ID) (*RawOutbound, error) {
	for _, d := range f.docs {
		if d.ID == docID {
			return d, nil
		}
	}
	return nil, apperror.NewNotFound("raw outbound", docID.String())
}

func (f *fakeDocRepo) ListHistory(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return nil, nil
}

type fakeStockRepo struct {
	balances map[id.ID]inventory.Balance
	status   []inventory.StatusRow
}

func (f *fakeStockRepo) GetByItem(ctx context.Context, itemID id.ID) (inventory.Balance, error) {
	b, ok := f.balances[itemID]
	if !ok {
		return inventory.Balance{}, apperror.NewNotFound("inventory", itemID.String())
	}
	return b, nil
}

func (f *fakeStockRepo) GetByItemForUpdate(ctx context.Context, itemID id.ID) (inventory.Balance, error) {
	return f.GetByItem(ctx, itemID)
}

func (f *fakeStockRepo) Create(ctx context.Context, balance inventory.Balance) error {
	f.balances[balance.RawsItemID] = balance
	return nil
}

func (f *fakeStockRepo) SetQty(ctx context.Context, balanceID id.ID, qty int64) error {
	for k, b := range f.balances {
		if b.ID == balanceID {
			b.Qty = qty
			f.balances[k] = b
			return nil
		}
	}
	return apperror.NewNotFound("inventory", balanceID.String())
}

func (f *fakeStockRepo) ListStatus(ctx context.Context, keyword string) ([]inventory.StatusRow, error) {
	return f.status, nil
}

func newTestService(opening map[id.ID]int64) (*Service, *fakeDocRepo, *fakeStockRepo) {
	docRepo := &fakeDocRepo{}
	stockRepo := &fakeStockRepo{balances: make(map[id.ID]inventory.Balance)}
	for itemID, qty := range opening {
		stockRepo.balances[itemID] = inventory.Balance{
			ID:         id.New(),
			RawsItemID: itemID,
			Qty:        qty,
		}
	}
	num := numerator.New(&seqQuerier{counters: make(map[string]int64)})
	svc := NewService(docRepo, inventory.NewService(stockRepo), fakeTxManager{}, num)
	return svc, docRepo, stockRepo
}

func TestRegister_CreatesDocumentAndDecreasesStock(t *testing.T) {
	itemID := id.New()
	svc, docRepo, stockRepo := newTestService(map[id.ID]int64{itemID: 50})

	date := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	doc, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID:   itemID,
		Qty:          20,
		OutboundDate: date,
	})
	require.NoError(t, err)

	assert.Equal(t, "MOUT-20260830-001", doc.Number)
	require.Len(t, docRepo.docs, 1)
	assert.Equal(t, int64(30), stockRepo.balances[itemID].Qty)
}

func TestRegister_ExactBalanceAllowed(t *testing.T) {
	itemID := id.New()
	svc, _, stockRepo := newTestService(map[id.ID]int64{itemID: 50})

	_, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID: itemID,
		Qty:        50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stockRepo.balances[itemID].Qty)
}

func TestRegister_OverdraftRejected(t *testing.T) {
	itemID := id.New()
	svc, docRepo, stockRepo := newTestService(map[id.ID]int64{itemID: 50})

	_, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID: itemID,
		Qty:        51,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Nothing written, balance untouched.
	assert.Empty(t, docRepo.docs)
	assert.Equal(t, int64(50), stockRepo.balances[itemID].Qty)
}

func TestRegister_UnknownItemNotFound(t *testing.T) {
	svc, _, _ := newTestService(nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID: id.New(),
		Qty:        1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStockList_DropsDrainedItems(t *testing.T) {
	svc, _, stockRepo := newTestService(nil)
	stockRepo.status = []inventory.StatusRow{
		{ItemCode: "RAW-001", Qty: 30},
		{ItemCode: "RAW-002", Qty: 0},
		{ItemCode: "RAW-003", Qty: 5},
	}

	rows, err := svc.StockList(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "RAW-001", rows[0].ItemCode)
	assert.Equal(t, "RAW-003", rows[1].ItemCode)
}
