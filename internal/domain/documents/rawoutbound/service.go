package rawoutbound

import (
	"context"
	"fmt"
	"time"

	"coatline/internal/core/entity"
	"coatline/internal/core/id"
	"coatline/internal/core/tx"
	"coatline/internal/domain/registers/inventory"
	"coatline/pkg/logger"
	"coatline/pkg/numerator"
)

// RegisterRequest carries the input for one outbound registration.
type RegisterRequest struct {
	RawsItemID   id.ID     `json:"rawsItemId"`
	Qty          int64     `json:"qty"`
	OutboundDate time.Time `json:"outboundDate"`
	Remark       *string   `json:"remark,omitempty"`
}

// Service registers raw-material releases. Each registration creates
// the document and decreases the stock balance in one transaction; the
// decrease fails when the balance would go negative.
type Service struct {
	repo      Repository
	stock     *inventory.Service
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new outbound registrar service.
func NewService(
	repo Repository,
	stock *inventory.Service,
	txManager tx.Manager,
	num *numerator.Service,
) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		txManager: txManager,
		numerator: num,
	}
}

// Register creates an outbound document and decreases stock.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RawOutbound, error) {
	doc := &RawOutbound{
		Document:   entity.NewDocument(),
		RawsItemID: req.RawsItemID,
		Qty:        req.Qty,
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
		if err := s.stock.Decrease(ctx, doc.RawsItemID, doc.Qty); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create outbound: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "raw outbound registered",
		"number", doc.Number,
		"item_id", doc.RawsItemID.String(),
		"qty", doc.Qty,
	)
	return doc, nil
}

// StockList shows the current balances the release screen picks from.
func (s *Service) StockList(ctx context.Context, keyword string) ([]inventory.StatusRow, error) {
	rows, err := s.stock.Status(ctx, keyword)
	if err != nil {
		return nil, err
	}
	// Items already drained to zero are not offered for release.
	out := rows[:0]
	for _, r := range rows {
		if r.Qty > 0 {
			out = append(out, r)
		}
	}
	return out, nil
}

// History lists outbound records joined with item data.
func (s *Service) History(ctx context.Context, keyword string) ([]HistoryRow, error) {
	return s.repo.ListHistory(ctx, keyword)
}
