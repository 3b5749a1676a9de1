package rawinbound

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
	"coatline/internal/domain"
	"coatline/internal/domain/catalogs/rawsitem"
	"coatline/internal/domain/registers/inventory"
	"coatline/pkg/numerator"
)

// --- fakes ---

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

// seqQuerier simulates the sys_sequences UPSERT counter.
type seqQuerier struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newSeqQuerier() *seqQuerier {
	return &seqQuerier{counters: make(map[string]int64)}
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := args[0].(string)
	q.counters[key]++
	return seqRow{val: q.counters[key]}
}

type fakeItemRepo struct {
	items map[id.ID]*rawsitem.RawsItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[id.ID]*rawsitem.RawsItem)}
}

func (f *fakeItemRepo) Create(ctx context.Context, item *rawsitem.RawsItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, itemID id.ID) (*rawsitem.RawsItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("raws item", itemID.String())
	}
	return item, nil
}

func (f *fakeItemRepo) GetByCode(ctx context.Context, code string) (*rawsitem.RawsItem, error) {
	for _, item := range f.items {
		if item.Code == code {
			return item, nil
		}
	}
	return nil, apperror.NewNotFound("raws item", code)
}

func (f *fakeItemRepo) Update(ctx context.Context, item *rawsitem.RawsItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) SetActive(ctx context.Context, itemID id.ID, active bool) error {
	item, ok := f.items[itemID]
	if !ok {
		return apperror.NewNotFound("raws item", itemID.String())
	}
	item.Active = active
	return nil
}

func (f *fakeItemRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*rawsitem.RawsItem], error) {
	return domain.ListResult[*rawsitem.RawsItem]{}, nil
}

func (f *fakeItemRepo) Exists(ctx context.Context, itemID id.ID) (bool, error) {
	_, ok := f.items[itemID]
	return ok, nil
}

func (f *fakeItemRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByCode(ctx, code)
	return err == nil, nil
}

func (f *fakeItemRepo) ListEligible(ctx context.Context, keyword string) ([]rawsitem.EligibleItem, error) {
	return nil, nil
}

type fakeDocRepo struct {
	docs []*RawInbound
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *RawInbound) error {
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, docID id.ID) (*RawInbound, error) {
	for _, d := range f.docs {
		if d.ID == docID {
			return d, nil
		}
	}
	return nil, apperror.NewNotFound("raw inbound", docID.String())
}

func (f *fakeDocRepo) ListHistory(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return nil, nil
}

type fakeStockRepo struct {
	balances map[id.ID]inventory.Balance
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
	return nil, nil
}

// --- tests ---

func newTestService() (*Service, *fakeDocRepo, *fakeItemRepo, *fakeStockRepo) {
	docRepo := &fakeDocRepo{}
	itemRepo := newFakeItemRepo()
	stockRepo := &fakeStockRepo{balances: make(map[id.ID]inventory.Balance)}
	stock := inventory.NewService(stockRepo)
	num := numerator.New(newSeqQuerier())
	svc := NewService(docRepo, itemRepo, stock, fakeTxManager{}, num)
	return svc, docRepo, itemRepo, stockRepo
}

func TestRegister_CreatesDocumentAndIncreasesStock(t *testing.T) {
	svc, docRepo, itemRepo, stockRepo := newTestService()

	item := rawsitem.NewRawsItem("RAW-001", "Epoxy Powder", id.New())
	manufacturer := "Hanil"
	item.Manufacturer = &manufacturer
	require.NoError(t, itemRepo.Create(context.Background(), item))

	date := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	doc, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID:  item.ID,
		Qty:         50,
		InboundDate: date,
	})
	require.NoError(t, err)

	assert.Equal(t, "MINC-20260830-001", doc.Number)
	assert.Equal(t, &manufacturer, doc.Manufacturer)
	require.Len(t, docRepo.docs, 1)
	assert.Equal(t, int64(50), stockRepo.balances[item.ID].Qty)
}

func TestRegister_NumbersIncrementWithinDay(t *testing.T) {
	svc, _, itemRepo, _ := newTestService()

	item := rawsitem.NewRawsItem("RAW-001", "Epoxy Powder", id.New())
	require.NoError(t, itemRepo.Create(context.Background(), item))

	date := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		doc, err := svc.Register(context.Background(), RegisterRequest{
			RawsItemID:  item.ID,
			Qty:         10,
			InboundDate: date,
		})
		require.NoError(t, err)
		assert.False(t, seen[doc.Number], "number %s issued twice", doc.Number)
		seen[doc.Number] = true
	}
	assert.True(t, seen["MINC-20260830-003"])
}

func TestRegister_UnknownItemNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID: id.New(),
		Qty:        10,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRegister_InactiveItemRejected(t *testing.T) {
	svc, _, itemRepo, _ := newTestService()

	item := rawsitem.NewRawsItem("RAW-001", "Epoxy Powder", id.New())
	item.Active = false
	require.NoError(t, itemRepo.Create(context.Background(), item))

	_, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID: item.ID,
		Qty:        10,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRegister_NonPositiveQtyRejected(t *testing.T) {
	svc, docRepo, itemRepo, _ := newTestService()

	item := rawsitem.NewRawsItem("RAW-001", "Epoxy Powder", id.New())
	require.NoError(t, itemRepo.Create(context.Background(), item))

	_, err := svc.Register(context.Background(), RegisterRequest{
		RawsItemID: item.ID,
		Qty:        0,
	})
	require.Error(t, err)
	assert.Empty(t, docRepo.docs)
}
