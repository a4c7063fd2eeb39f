package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/internal/domain"
	"carrental/internal/modules/rental"
	"carrental/internal/pkg/validator"
	"carrental/internal/repository"
)

type Service struct {
	store *repository.Store
	now   func() time.Time
}

func NewService(store *repository.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SetClock replaces the source of the default payment date.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// RecordPayment stores the single payment for a rental awaiting payment and
// starts the rental, in one transaction.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest, actorID *int64) (*Receipt, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidMethod
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	paidOn := domain.Day(s.now())
	if req.PaymentDate != "" {
		d, err := domain.ParseDate(req.PaymentDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		paidOn = d
	}

	var out *Receipt
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		r, err := tx.Rentals.GetByIDForUpdate(ctx, req.RentalID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRentalNotFound
			}
			return err
		}

		switch _, err := tx.Payments.GetByRentalID(ctx, r.ID); {
		case err == nil:
			return ErrAlreadyPaid
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		if r.Status != domain.RentalPendingPayment {
			return ErrRentalNotPending
		}
		if !req.Amount.Equal(r.TotalAmount) {
			return ErrAmountMismatch
		}

		p := &domain.Payment{
			RentalID:      r.ID,
			Amount:        req.Amount,
			PaymentDate:   paidOn,
			PaymentMethod: req.PaymentMethod,
			Status:        domain.PaymentPaid,
			ReferenceNo:   req.ReferenceNo,
		}
		if err := tx.Payments.Create(ctx, p); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadyPaid
			}
			return fmt.Errorf("create payment: %w", err)
		}

		if err := rental.Apply(ctx, tx, r, domain.RentalOngoing, actorID, "payment received"); err != nil {
			return err
		}
		out = &Receipt{Payment: *p, Rental: *r}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, req ListRequest) ([]domain.Payment, int64, error) {
	f := repository.PaymentFilter{
		Status: domain.PaymentStatus(req.Status),
		Method: domain.PaymentMethod(req.Method),
		Offset: req.Offset(),
		Limit:  req.Normalize().Limit,
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if f.Method != "" && !f.Method.Valid() {
		return nil, 0, ErrInvalidMethod
	}

	var err error
	if f.DateFrom, err = domain.ParseOptionalDate(req.DateFrom); err != nil {
		return nil, 0, ErrInvalidDate
	}
	if f.DateTo, err = domain.ParseOptionalDate(req.DateTo); err != nil {
		return nil, 0, ErrInvalidDate
	}
	return s.store.Payments.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.store.Payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateStatus moves a payment to Completed, Refunded or Failed. Refunds and
// failures cancel a rental that is still active.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to domain.PaymentStatus, actorID *int64, note string) (*Receipt, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	var out *Receipt
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		p, err := tx.Payments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if p.Status == domain.PaymentRefunded || p.Status == domain.PaymentFailed {
			return ErrPaymentFinal
		}
		if p.Status == to {
			return ErrStatusChange
		}

		r, err := tx.Rentals.GetByIDForUpdate(ctx, p.RentalID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRentalNotFound
			}
			return err
		}

		switch to {
		case domain.PaymentRefunded, domain.PaymentFailed:
			if r.Status.Active() {
				if note == "" {
					note = "payment " + string(to)
				}
				if err := rental.Apply(ctx, tx, r, domain.RentalCancelled, actorID, note); err != nil {
					return err
				}
			}
		case domain.PaymentCompleted:
			if r.Status != domain.RentalCompleted {
				return ErrRentalNotDone
			}
		default:
			return ErrStatusChange
		}

		p.Status = to
		if err := tx.Payments.Update(ctx, p); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		out = &Receipt{Payment: *p, Rental: *r}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
