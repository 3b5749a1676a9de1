package operations

import (
	"context"
	"fmt"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/tx"
	"coatline/internal/domain"
	"coatline/pkg/logger"
	"coatline/pkg/numerator"
)

// Service provides business logic for the operation catalog and its
// status workflow.
type Service struct {
	*domain.CatalogService[*Operation]
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new Operation service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	num *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Operation]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "operation",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.guardCompleted)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, op *Operation) error {
	if op.Code == "" {
		cfg := numerator.Config{Prefix: "OP", PadWidth: 3, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, cfg, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		op.Code = code
	}
	if op.Status == "" {
		op.Status = StatusPending
	}
	return nil
}

// guardCompleted blocks edits once an operation has completed.
func (s *Service) guardCompleted(ctx context.Context, op *Operation) error {
	current, err := s.repo.GetByID(ctx, op.ID)
	if err != nil {
		return err
	}
	if current.Status == StatusCompleted {
		return apperror.NewInvalidState("Cannot modify a completed operation").
			WithDetail("operation_id", op.ID.String())
	}
	return nil
}

// ListOrdered returns all active operations in sequence order.
func (s *Service) ListOrdered(ctx context.Context) ([]*Operation, error) {
	return s.repo.ListOrdered(ctx)
}

// Reorder applies a batch of position changes in one transaction.
func (s *Service) Reorder(ctx context.Context, updates []OrderUpdate) error {
	if len(updates) == 0 {
		return apperror.NewValidation("no order updates given")
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, u := range updates {
			if _, err := s.repo.GetByID(ctx, u.ID); err != nil {
				return err
			}
		}
		return s.repo.UpdateOrder(ctx, updates)
	})
}

// StartNext moves the lowest-ordered pending operation to in_progress
// and stamps its start time. Returns the started operation.
func (s *Service) StartNext(ctx context.Context) (*Operation, error) {
	var started *Operation

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		op, err := s.repo.FirstPending(ctx)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewInvalidState("No pending operation to start")
			}
			return err
		}

		now := time.Now().UTC()
		op.Status = StatusInProgress
		op.StartTime = &now

		if err := s.repo.Update(ctx, op); err != nil {
			return err
		}
		started = op
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "operation started",
		"operation_id", started.ID.String(),
		"name", started.Name,
	)
	return started, nil
}
