package rawinbound

import (
	"context"
	"fmt"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
	"coatline/internal/core/tx"
	"coatline/internal/domain/catalogs/rawsitem"
	"coatline/internal/domain/registers/inventory"
	"coatline/pkg/logger"
	"coatline/pkg/numerator"
)

// RegisterRequest carries the input for one inbound registration.
type RegisterRequest struct {
	RawsItemID        id.ID      `json:"rawsItemId"`
	Qty               int64      `json:"qty"`
	InboundDate       time.Time  `json:"inboundDate"`
	ManufacturingDate *time.Time `json:"manufacturingDate,omitempty"`
	Remark            *string    `json:"remark,omitempty"`
}

// Service registers raw-material receipts. Each registration creates
// the document and increases the stock balance in one transaction.
type Service struct {
	repo      Repository
	items     rawsitem.Repository
	stock     *inventory.Service
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new inbound registrar service.
func NewService(
	repo Repository,
	items rawsitem.Repository,
	stock *inventory.Service,
	txManager tx.Manager,
	num *numerator.Service,
) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		stock:     stock,
		txManager: txManager,
		numerator: num,
	}
}

// Register creates an inbound document and increases stock.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RawInbound, error) {
	item, err := s.items.GetByID(ctx, req.RawsItemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("raws item", req.RawsItemID.String())
		}
		return nil, err
	}
	if !item.Active {
		return nil, apperror.NewValidation("item is inactive").
			WithDetail("raws_item_id", req.RawsItemID.String())
	}

	doc := &RawInbound{
		Document:          entity.NewDocument(),
		RawsItemID:        item.ID,
		Qty:               req.Qty,
		ManufacturingDate: req.ManufacturingDate,
		Manufacturer:      item.Manufacturer,
	}
	if !req.InboundDate.IsZero() {
		doc.Date = req.InboundDate
	}
	doc.Remark = req.Remark

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig(NumberPrefix), doc.Date)
	if err != nil {
		return nil, fmt.Errorf("allocate number: %w", err)
	}
	doc.Number = number

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create inbound: %w", err)
		}
		return s.stock.Increase(ctx, doc.RawsItemID, doc.Qty)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "raw inbound registered",
		"number", doc.Number,
		"item_id", doc.RawsItemID.String(),
		"qty", doc.Qty,
	)
	return doc, nil
}

// EligibleItems lists active items from active suppliers for the
// inbound pick list.
func (s *Service) EligibleItems(ctx context.Context, keyword string) ([]rawsitem.EligibleItem, error) {
	return s.items.ListEligible(ctx, keyword)
}

// History lists inbound records joined with item data.
func (s *Service) History(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return s.repo.ListHistory(ctx, keyword)
}
