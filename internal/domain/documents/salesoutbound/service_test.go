package salesoutbound

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
	"coatline/internal/domain/documents/salesinbound"
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

type fakeLotRepo struct {
	lots map[id.ID]*salesinbound.SalesInbound
}

func (f *fakeLotRepo) Create(ctx context.Context, doc *salesinbound.SalesInbound) error {
	cp := *doc
	f.lots[doc.ID] = &cp
	return nil
}

func (f *fakeLotRepo) GetByID(ctx context.Context, docID id.ID) (*salesinbound.SalesInbound, error) {
	doc, ok := f.lots[docID]
	if !ok {
		return nil, apperror.NewNotFound("lot", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeLotRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*salesinbound.SalesInbound, error) {
	return f.GetByID(ctx, docID)
}

func (f *fakeLotRepo) Update(ctx context.Context, doc *salesinbound.SalesInbound) error {
	if _, ok := f.lots[doc.ID]; !ok {
		return apperror.NewNotFound("lot", doc.ID.String())
	}
	cp := *doc
	f.lots[doc.ID] = &cp
	return nil
}

func (f *fakeLotRepo) ListHistory(ctx context.Context, keyword string) ([]salesinbound.HistoryRow, error) {
	return nil, nil
}

func (f *fakeLotRepo) ListOpen(ctx context.Context, keyword string) ([]salesinbound.HistoryRow, error) {
	return nil, nil
}

type fakeDocRepo struct {
	docs map[id.ID]*SalesOutbound
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *SalesOutbound) error {
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, docID id.ID) (*SalesOutbound, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("shipment", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeDocRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*SalesOutbound, error) {
	return f.GetByID(ctx, docID)
}

func (f *fakeDocRepo) Update(ctx context.Context, doc *SalesOutbound) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return apperror.NewNotFound("shipment", doc.ID.String())
	}
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocRepo) ListHistory(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return nil, nil
}

func newTestService(t *testing.T, lotQty int64) (*Service, *fakeDocRepo, *fakeLotRepo, *salesinbound.SalesInbound) {
	t.Helper()

	lot := &salesinbound.SalesInbound{
		Document:     entity.NewDocument(),
		SalesItemID:  id.New(),
		Qty:          lotQty,
		RemainingQty: lotQty,
	}
	lot.Number = "LOT-20260830-001"

	lotRepo := &fakeLotRepo{lots: make(map[id.ID]*salesinbound.SalesInbound)}
	require.NoError(t, lotRepo.Create(context.Background(), lot))

	docRepo := &fakeDocRepo{docs: make(map[id.ID]*SalesOutbound)}
	num := numerator.New(&seqQuerier{counters: make(map[string]int64)})
	svc := NewService(docRepo, lotRepo, fakeTxManager{}, num)
	return svc, docRepo, lotRepo, lot
}

func TestRegister_DrawsDownLot(t *testing.T) {
	svc, docRepo, lotRepo, lot := newTestService(t, 100)

	doc, err := svc.Register(context.Background(), RegisterRequest{
		SalesInboundID: lot.ID,
		Qty:            40,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40), doc.Qty)
	assert.Len(t, docRepo.docs, 1)

	stored := lotRepo.lots[lot.ID]
	assert.Equal(t, int64(60), stored.RemainingQty)
	assert.False(t, stored.OutboundProcessed)
}

func TestRegister_CarriesRemark(t *testing.T) {
	svc, docRepo, _, lot := newTestService(t, 100)

	remark := "partial pallet"
	doc, err := svc.Register(context.Background(), RegisterRequest{
		SalesInboundID: lot.ID,
		Qty:            40,
		Remark:         &remark,
	})
	require.NoError(t, err)

	stored := docRepo.docs[doc.ID]
	require.NotNil(t, stored.Remark)
	assert.Equal(t, "partial pallet", *stored.Remark)
}

func TestRegister_LastShipmentFlipsProcessed(t *testing.T) {
	svc, _, lotRepo, lot := newTestService(t, 100)

	_, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 40})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 60})
	require.NoError(t, err)

	stored := lotRepo.lots[lot.ID]
	assert.Equal(t, int64(0), stored.RemainingQty)
	assert.True(t, stored.OutboundProcessed)

	// A fully shipped lot accepts no further shipments.
	_, err = svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestRegister_OverRemainingRejected(t *testing.T) {
	svc, docRepo, lotRepo, lot := newTestService(t, 100)

	_, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 101})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	assert.Empty(t, docRepo.docs)
	assert.Equal(t, int64(100), lotRepo.lots[lot.ID].RemainingQty)
}

func TestRegister_CancelledLotRejected(t *testing.T) {
	svc, _, lotRepo, lot := newTestService(t, 100)
	lotRepo.lots[lot.ID].Cancelled = true

	_, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 10})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestRegister_UnknownLotNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t, 100)

	_, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: id.New(), Qty: 10})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_ShrinkingShipmentRestoresLot(t *testing.T) {
	svc, _, lotRepo, lot := newTestService(t, 100)

	doc, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 40})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), doc.ID, UpdateRequest{Qty: 25})
	require.NoError(t, err)
	assert.Equal(t, int64(25), updated.Qty)
	assert.Equal(t, int64(75), lotRepo.lots[lot.ID].RemainingQty)
}

func TestUpdate_GrowthBeyondRemainingRejected(t *testing.T) {
	svc, _, lotRepo, lot := newTestService(t, 100)

	doc, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 40})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), doc.ID, UpdateRequest{Qty: 141})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(60), lotRepo.lots[lot.ID].RemainingQty)
}

func TestUpdate_GrowingToFullLotFlipsProcessed(t *testing.T) {
	svc, _, lotRepo, lot := newTestService(t, 100)

	doc, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 40})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), doc.ID, UpdateRequest{Qty: 100})
	require.NoError(t, err)

	stored := lotRepo.lots[lot.ID]
	assert.Equal(t, int64(0), stored.RemainingQty)
	assert.True(t, stored.OutboundProcessed)
}

func TestUpdate_CancelledLotRejected(t *testing.T) {
	svc, _, lotRepo, lot := newTestService(t, 100)

	doc, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 40})
	require.NoError(t, err)

	lotRepo.lots[lot.ID].Cancelled = true

	_, err = svc.Update(context.Background(), doc.ID, UpdateRequest{Qty: 25})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
	assert.Equal(t, int64(60), lotRepo.lots[lot.ID].RemainingQty)
}

func TestCancel_CancelledLotRejected(t *testing.T) {
	svc, docRepo, lotRepo, lot := newTestService(t, 100)

	doc, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 40})
	require.NoError(t, err)

	lotRepo.lots[lot.ID].Cancelled = true

	err = svc.Cancel(context.Background(), doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
	assert.False(t, docRepo.docs[doc.ID].Cancelled)
	assert.Equal(t, int64(60), lotRepo.lots[lot.ID].RemainingQty)
}

func TestCancel_RestoresLotAndRejectsSecondCancel(t *testing.T) {
	svc, docRepo, lotRepo, lot := newTestService(t, 100)

	doc, err := svc.Register(context.Background(), RegisterRequest{SalesInboundID: lot.ID, Qty: 100})
	require.NoError(t, err)
	require.True(t, lotRepo.lots[lot.ID].OutboundProcessed)

	require.NoError(t, svc.Cancel(context.Background(), doc.ID))

	stored := lotRepo.lots[lot.ID]
	assert.Equal(t, int64(100), stored.RemainingQty)
	assert.False(t, stored.OutboundProcessed)
	assert.True(t, docRepo.docs[doc.ID].Cancelled)

	err = svc.Cancel(context.Background(), doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}
