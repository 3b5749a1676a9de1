package salesitem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain"
	"coatline/internal/domain/catalogs/partner"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePartnerRepo struct {
	partners map[id.ID]*partner.Partner
}

func (f *fakePartnerRepo) Create(ctx context.Context, p *partner.Partner) error {
	f.partners[p.ID] = p
	return nil
}

func (f *fakePartnerRepo) GetByID(ctx context.Context, pID id.ID) (*partner.Partner, error) {
	p, ok := f.partners[pID]
	if !ok {
		return nil, apperror.NewNotFound("partner", pID.String())
	}
	return p, nil
}

func (f *fakePartnerRepo) GetByCode(ctx context.Context, code string) (*partner.Partner, error) {
	for _, p := range f.partners {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("partner", code)
}

func (f *fakePartnerRepo) Update(ctx context.Context, p *partner.Partner) error {
	f.partners[p.ID] = p
	return nil
}

func (f *fakePartnerRepo) SetActive(ctx context.Context, pID id.ID, active bool) error {
	p, ok := f.partners[pID]
	if !ok {
		return apperror.NewNotFound("partner", pID.String())
	}
	p.Active = active
	return nil
}

func (f *fakePartnerRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*partner.Partner], error) {
	return domain.ListResult[*partner.Partner]{}, nil
}

func (f *fakePartnerRepo) Exists(ctx context.Context, pID id.ID) (bool, error) {
	_, ok := f.partners[pID]
	return ok, nil
}

func (f *fakePartnerRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByCode(ctx, code)
	return err == nil, nil
}

func (f *fakePartnerRepo) FindByName(ctx context.Context, name string) (*partner.Partner, error) {
	for _, p := range f.partners {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("partner", name)
}

func (f *fakePartnerRepo) GetForUpdate(ctx context.Context, pID id.ID) (*partner.Partner, error) {
	return f.GetByID(ctx, pID)
}

type fakeItemRepo struct {
	items   map[id.ID]*SalesItem
	routing map[id.ID][]RoutingStep
	opNames map[id.ID]string
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:   make(map[id.ID]*SalesItem),
		routing: make(map[id.ID][]RoutingStep),
		opNames: make(map[id.ID]string),
	}
}

func (f *fakeItemRepo) Create(ctx context.Context, item *SalesItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, itemID id.ID) (*SalesItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("sales item", itemID.String())
	}
	return item, nil
}

func (f *fakeItemRepo) GetByCode(ctx context.Context, code string) (*SalesItem, error) {
	for _, item := range f.items {
		if item.Code == code {
			return item, nil
		}
	}
	return nil, apperror.NewNotFound("sales item", code)
}

func (f *fakeItemRepo) Update(ctx context.Context, item *SalesItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) SetActive(ctx context.Context, itemID id.ID, active bool) error {
	item, ok := f.items[itemID]
	if !ok {
		return apperror.NewNotFound("sales item", itemID.String())
	}
	item.Active = active
	return nil
}

func (f *fakeItemRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*SalesItem], error) {
	return domain.ListResult[*SalesItem]{}, nil
}

func (f *fakeItemRepo) Exists(ctx context.Context, itemID id.ID) (bool, error) {
	_, ok := f.items[itemID]
	return ok, nil
}

func (f *fakeItemRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByCode(ctx, code)
	return err == nil, nil
}

func (f *fakeItemRepo) GetRouting(ctx context.Context, itemID id.ID) ([]RoutingStep, error) {
	steps := f.routing[itemID]
	out := make([]RoutingStep, len(steps))
	for i, st := range steps {
		st.OperationName = f.opNames[st.OperationID]
		out[i] = st
	}
	return out, nil
}

func (f *fakeItemRepo) ReplaceRouting(ctx context.Context, itemID id.ID, steps []RoutingStep) error {
	f.routing[itemID] = steps
	if item, ok := f.items[itemID]; ok {
		item.TotalOperations = len(steps)
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeItemRepo, *partner.Partner) {
	t.Helper()

	partnerRepo := &fakePartnerRepo{partners: make(map[id.ID]*partner.Partner)}
	customer := partner.NewPartner("Daesung Motors", partner.TypeCustomer)
	require.NoError(t, partnerRepo.Create(context.Background(), customer))

	itemRepo := newFakeItemRepo()
	svc := NewService(itemRepo, partnerRepo, fakeTxManager{})
	return svc, itemRepo, customer
}

func TestCreate_ResolvesCustomerName(t *testing.T) {
	svc, itemRepo, customer := newTestService(t)

	item := NewSalesItem("ITEM-001", "Door Bracket", customer.ID)
	require.NoError(t, svc.Create(context.Background(), item))

	assert.Equal(t, "Daesung Motors", item.PartnerName)
	assert.Contains(t, itemRepo.items, item.ID)
}

func TestCreate_SupplierRejectedAsCustomer(t *testing.T) {
	svc, _, _ := newTestService(t)

	supplier := partner.NewPartner("Hanil Chemicals", partner.TypeSupplier)
	// Register the supplier so the lookup succeeds but the type check fails.
	require.NoError(t, svc.partners.Create(context.Background(), supplier))

	item := NewSalesItem("ITEM-002", "Hinge", supplier.ID)
	err := svc.Create(context.Background(), item)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestReplaceRouting_ResequencesFromOne(t *testing.T) {
	svc, itemRepo, customer := newTestService(t)

	item := NewSalesItem("ITEM-001", "Door Bracket", customer.ID)
	require.NoError(t, svc.Create(context.Background(), item))

	opA, opB := id.New(), id.New()
	require.NoError(t, svc.ReplaceRouting(context.Background(), item.ID, []id.ID{opB, opA}))

	steps := itemRepo.routing[item.ID]
	require.Len(t, steps, 2)
	assert.Equal(t, opB, steps[0].OperationID)
	assert.Equal(t, 1, steps[0].Seq)
	assert.Equal(t, 2, steps[1].Seq)
	assert.Equal(t, 2, itemRepo.items[item.ID].TotalOperations)
}

func TestReplaceRouting_DuplicateOperationRejected(t *testing.T) {
	svc, _, customer := newTestService(t)

	item := NewSalesItem("ITEM-001", "Door Bracket", customer.ID)
	require.NoError(t, svc.Create(context.Background(), item))

	opA := id.New()
	err := svc.ReplaceRouting(context.Background(), item.ID, []id.ID{opA, opA})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRoutingInfo_JoinsOperationNames(t *testing.T) {
	svc, itemRepo, customer := newTestService(t)

	item := NewSalesItem("ITEM-001", "Door Bracket", customer.ID)
	require.NoError(t, svc.Create(context.Background(), item))

	opA, opB, opC := id.New(), id.New(), id.New()
	itemRepo.opNames[opA] = "Degrease"
	itemRepo.opNames[opB] = "Powder Coat"
	itemRepo.opNames[opC] = "Cure"
	require.NoError(t, svc.ReplaceRouting(context.Background(), item.ID, []id.ID{opA, opB, opC}))

	info, err := svc.RoutingInfo(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Degrease > Powder Coat > Cure", info)
}
