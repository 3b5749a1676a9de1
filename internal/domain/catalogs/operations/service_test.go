package operations

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain"
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

type fakeRepo struct {
	ops map[id.ID]*Operation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{ops: make(map[id.ID]*Operation)}
}

func (f *fakeRepo) Create(ctx context.Context, op *Operation) error {
	cp := *op
	f.ops[op.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, opID id.ID) (*Operation, error) {
	op, ok := f.ops[opID]
	if !ok {
		return nil, apperror.NewNotFound("operation", opID.String())
	}
	cp := *op
	return &cp, nil
}

func (f *fakeRepo) GetByCode(ctx context.Context, code string) (*Operation, error) {
	for _, op := range f.ops {
		if op.Code == code {
			cp := *op
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("operation", code)
}

func (f *fakeRepo) Update(ctx context.Context, op *Operation) error {
	if _, ok := f.ops[op.ID]; !ok {
		return apperror.NewNotFound("operation", op.ID.String())
	}
	cp := *op
	f.ops[op.ID] = &cp
	return nil
}

func (f *fakeRepo) SetActive(ctx context.Context, opID id.ID, active bool) error {
	op, ok := f.ops[opID]
	if !ok {
		return apperror.NewNotFound("operation", opID.String())
	}
	op.Active = active
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Operation], error) {
	return domain.ListResult[*Operation]{}, nil
}

func (f *fakeRepo) Exists(ctx context.Context, opID id.ID) (bool, error) {
	_, ok := f.ops[opID]
	return ok, nil
}

func (f *fakeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByCode(ctx, code)
	return err == nil, nil
}

func (f *fakeRepo) sorted() []*Operation {
	out := make([]*Operation, 0, len(f.ops))
	for _, op := range f.ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OperationOrder < out[j].OperationOrder
	})
	return out
}

func (f *fakeRepo) ListOrdered(ctx context.Context) ([]*Operation, error) {
	var out []*Operation
	for _, op := range f.sorted() {
		if op.Active {
			cp := *op
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateOrder(ctx context.Context, updates []OrderUpdate) error {
	for _, u := range updates {
		op, ok := f.ops[u.ID]
		if !ok {
			return apperror.NewNotFound("operation", u.ID.String())
		}
		op.OperationOrder = u.OperationOrder
	}
	return nil
}

func (f *fakeRepo) FirstPending(ctx context.Context) (*Operation, error) {
	for _, op := range f.sorted() {
		if op.Active && op.Status == StatusPending {
			cp := *op
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("operation", "pending")
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	num := numerator.New(&seqQuerier{counters: make(map[string]int64)})
	return NewService(repo, fakeTxManager{}, num), repo
}

func TestCreate_GeneratesCodeAndDefaultsStatus(t *testing.T) {
	svc, repo := newTestService()

	op := NewOperation("", "Degrease", 1)
	require.NoError(t, svc.Create(context.Background(), op))

	stored := repo.ops[op.ID]
	assert.Equal(t, "OP-001", stored.Code)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestUpdate_CompletedOperationRejected(t *testing.T) {
	svc, repo := newTestService()

	op := NewOperation("OP-001", "Degrease", 1)
	require.NoError(t, svc.Create(context.Background(), op))
	repo.ops[op.ID].Status = StatusCompleted

	op.Name = "Degrease v2"
	err := svc.Update(context.Background(), op)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestStartNext_StartsLowestPending(t *testing.T) {
	svc, repo := newTestService()

	first := NewOperation("OP-001", "Degrease", 1)
	second := NewOperation("OP-002", "Powder Coat", 2)
	require.NoError(t, svc.Create(context.Background(), first))
	require.NoError(t, svc.Create(context.Background(), second))

	started, err := svc.StartNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, started.ID)
	assert.Equal(t, StatusInProgress, started.Status)
	require.NotNil(t, started.StartTime)

	stored := repo.ops[first.ID]
	assert.Equal(t, StatusInProgress, stored.Status)
}

func TestStartNext_NothingPending(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.StartNext(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestReorder_AppliesPositions(t *testing.T) {
	svc, repo := newTestService()

	first := NewOperation("OP-001", "Degrease", 1)
	second := NewOperation("OP-002", "Powder Coat", 2)
	require.NoError(t, svc.Create(context.Background(), first))
	require.NoError(t, svc.Create(context.Background(), second))

	err := svc.Reorder(context.Background(), []OrderUpdate{
		{ID: first.ID, OperationOrder: 2},
		{ID: second.ID, OperationOrder: 1},
	})
	require.NoError(t, err)

	ordered, err := svc.ListOrdered(context.Background())
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, second.ID, ordered[0].ID)
	assert.Equal(t, 2, repo.ops[first.ID].OperationOrder)
	assert.Equal(t, 1, repo.ops[second.ID].OperationOrder)
}

func TestReorder_EmptyAndUnknownRejected(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Reorder(context.Background(), nil)
	require.Error(t, err)

	err = svc.Reorder(context.Background(), []OrderUpdate{{ID: id.New(), OperationOrder: 1}})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
