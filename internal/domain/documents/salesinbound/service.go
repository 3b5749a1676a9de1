package salesinbound

import (
	"context"
	"fmt"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
	"coatline/internal/core/tx"
	"coatline/internal/domain/catalogs/salesitem"
	"coatline/pkg/logger"
	"coatline/pkg/numerator"
)

// RegisterRequest carries the input for one lot registration.
type RegisterRequest struct {
	SalesItemID id.ID     `json:"salesItemId"`
	Qty         int64     `json:"qty"`
	OrderDate   time.Time `json:"orderDate"`
	Remark      *string   `json:"remark,omitempty"`
}

// UpdateRequest carries an edit to an existing lot.
type UpdateRequest struct {
	Qty       int64     `json:"qty"`
	OrderDate time.Time `json:"orderDate"`
	Remark    *string   `json:"remark,omitempty"`
}

// Service registers production order lots and guards their lifecycle.
type Service struct {
	repo      Repository
	items     salesitem.Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new lot registrar service.
func NewService(
	repo Repository,
	items salesitem.Repository,
	txManager tx.Manager,
	num *numerator.Service,
) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		txManager: txManager,
		numerator: num,
	}
}

// Register creates a lot with its full quantity still remaining.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*SalesInbound, error) {
	item, err := s.items.GetByID(ctx, req.SalesItemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("sales item", req.SalesItemID.String())
		}
		return nil, err
	}
	if !item.Active {
		return nil, apperror.NewValidation("item is inactive").
			WithDetail("sales_item_id", req.SalesItemID.String())
	}

	doc := &SalesInbound{
		Document:     entity.NewDocument(),
		SalesItemID:  item.ID,
		Qty:          req.Qty,
		RemainingQty: req.Qty,
	}
	if !req.OrderDate.IsZero() {
		doc.Date = req.OrderDate
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
		return s.repo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "lot registered",
		"number", doc.Number,
		"item_id", doc.SalesItemID.String(),
		"qty", doc.Qty,
	)
	return doc, nil
}

// Get returns one lot.
func (s *Service) Get(ctx context.Context, docID id.ID) (*SalesInbound, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("lot", docID.String())
		}
		return nil, err
	}
	return doc, nil
}

// Update edits a lot's quantity, date and remark. Rejected once the
// lot is cancelled or fully shipped; the remaining quantity moves by
// the same delta as the ordered quantity and may not drop below the
// amount already shipped.
func (s *Service) Update(ctx context.Context, docID id.ID, req UpdateRequest) (*SalesInbound, error) {
	var updated *SalesInbound

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("lot", docID.String())
			}
			return err
		}
		if err := doc.CanModify(); err != nil {
			return err
		}

		shipped := doc.Qty - doc.RemainingQty
		if req.Qty < shipped {
			return apperror.NewValidation("quantity below already shipped amount").
				WithDetail("qty", req.Qty).
				WithDetail("shipped", shipped)
		}

		doc.RemainingQty += req.Qty - doc.Qty
		doc.Qty = req.Qty
		if !req.OrderDate.IsZero() {
			doc.Date = req.OrderDate
		}
		doc.Remark = req.Remark
		doc.Touch()

		if err := doc.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "lot updated",
		"number", updated.Number,
		"qty", updated.Qty,
		"remaining", updated.RemainingQty,
	)
	return updated, nil
}

// Cancel voids a lot. Rejected once the lot is already cancelled or
// fully shipped.
func (s *Service) Cancel(ctx context.Context, docID id.ID) error {
	var number string

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("lot", docID.String())
			}
			return err
		}
		if err := doc.CanModify(); err != nil {
			return err
		}

		doc.MarkCancelled()
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		number = doc.Number
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "lot cancelled", "number", number)
	return nil
}

// History lists lots joined with product and customer data.
func (s *Service) History(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return s.repo.ListHistory(ctx, keyword)
}

// Open lists lots still waiting for shipment.
func (s *Service) Open(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return s.repo.ListOpen(ctx, keyword)
}
