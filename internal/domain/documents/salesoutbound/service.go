package salesoutbound

import (
	"context"
	"fmt"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
	"coatline/internal/core/tx"
	"coatline/internal/domain/documents/salesinbound"
	"coatline/pkg/logger"
	"coatline/pkg/numerator"
)

// RegisterRequest carries the input for one shipment registration.
type RegisterRequest struct {
	SalesInboundID id.ID     `json:"salesInboundId"`
	Qty            int64     `json:"qty"`
	OutboundDate   time.Time `json:"outboundDate"`
	Remark         *string   `json:"remark,omitempty"`
}

// UpdateRequest carries an edit to an existing shipment.
type UpdateRequest struct {
	Qty          int64     `json:"qty"`
	OutboundDate time.Time `json:"outboundDate"`
	Remark       *string   `json:"remark,omitempty"`
}

// Service registers product shipments against lots. Every mutation
// locks the lot row and keeps its remaining quantity consistent with
// the shipments in one transaction.
type Service struct {
	repo      Repository
	lots      salesinbound.Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new shipment registrar service.
func NewService(
	repo Repository,
	lots salesinbound.Repository,
	txManager tx.Manager,
	num *numerator.Service,
) *Service {
	return &Service{
		repo:      repo,
		lots:      lots,
		txManager: txManager,
		numerator: num,
	}
}

func (s *Service) lockLot(ctx context.Context, lotID id.ID) (*salesinbound.SalesInbound, error) {
	lot, err := s.lots.GetByIDForUpdate(ctx, lotID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("lot", lotID.String())
		}
		return nil, err
	}
	return lot, nil
}

// Register creates a shipment and draws down the lot's remaining
// quantity. The lot flips to fully shipped when it reaches zero.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*SalesOutbound, error) {
	doc := &SalesOutbound{
		Document:       entity.NewDocument(),
		SalesInboundID: req.SalesInboundID,
		Qty:            req.Qty,
	}
	if !req.OutboundDate.IsZero() {
		doc.Date = req.OutboundDate
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
		lot, err := s.lockLot(ctx, req.SalesInboundID)
		if err != nil {
			return err
		}
		if lot.Cancelled {
			return apperror.NewInvalidState("Cannot ship a cancelled lot").
				WithDetail("lot_number", lot.Number)
		}
		if lot.OutboundProcessed || lot.RemainingQty <= 0 {
			return apperror.NewInvalidState("Lot is already fully shipped").
				WithDetail("lot_number", lot.Number)
		}
		if req.Qty > lot.RemainingQty {
			return apperror.NewInsufficientStock(lot.Number, req.Qty, lot.RemainingQty)
		}

		lot.RemainingQty -= req.Qty
		lot.OutboundProcessed = lot.RemainingQty == 0
		lot.Touch()
		if err := s.lots.Update(ctx, lot); err != nil {
			return err
		}

		return s.repo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "shipment registered",
		"number", doc.Number,
		"lot_id", doc.SalesInboundID.String(),
		"qty", doc.Qty,
	)
	return doc, nil
}

// Update edits a shipment's quantity, date and remark. The lot's
// remaining quantity moves by the opposite delta and may not go
// negative.
func (s *Service) Update(ctx context.Context, docID id.ID, req UpdateRequest) (*SalesOutbound, error) {
	if req.Qty <= 0 {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty")
	}

	var updated *SalesOutbound

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("shipment", docID.String())
			}
			return err
		}
		if err := doc.CanModify(); err != nil {
			return err
		}

		lot, err := s.lockLot(ctx, doc.SalesInboundID)
		if err != nil {
			return err
		}
		if lot.Cancelled {
			return apperror.NewInvalidState("Cannot adjust shipments of a cancelled lot").
				WithDetail("lot_number", lot.Number)
		}

		delta := req.Qty - doc.Qty
		if delta > lot.RemainingQty {
			return apperror.NewInsufficientStock(lot.Number, delta, lot.RemainingQty)
		}

		lot.RemainingQty -= delta
		lot.OutboundProcessed = lot.RemainingQty == 0
		lot.Touch()
		if err := s.lots.Update(ctx, lot); err != nil {
			return err
		}

		doc.Qty = req.Qty
		if !req.OutboundDate.IsZero() {
			doc.Date = req.OutboundDate
		}
		doc.Remark = req.Remark
		doc.Touch()

		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "shipment updated",
		"number", updated.Number,
		"qty", updated.Qty,
	)
	return updated, nil
}

// Cancel voids a shipment and restores its quantity to the lot. A
// second cancel of the same shipment is rejected.
func (s *Service) Cancel(ctx context.Context, docID id.ID) error {
	var number string

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("shipment", docID.String())
			}
			return err
		}
		if err := doc.CanModify(); err != nil {
			return err
		}

		lot, err := s.lockLot(ctx, doc.SalesInboundID)
		if err != nil {
			return err
		}
		if lot.Cancelled {
			return apperror.NewInvalidState("Cannot adjust shipments of a cancelled lot").
				WithDetail("lot_number", lot.Number)
		}

		lot.RemainingQty += doc.Qty
		lot.OutboundProcessed = lot.RemainingQty == 0
		lot.Touch()
		if err := s.lots.Update(ctx, lot); err != nil {
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

	logger.Info(ctx, "shipment cancelled", "number", number)
	return nil
}

// History lists shipments joined with lot and product data.
func (s *Service) History(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return s.repo.ListHistory(ctx, keyword)
}
