package rental

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/apperr"
	"carrental/internal/repository"
)

// Apply is the only place a rental changes status. It must run inside tx:
// the rental row is saved, then the vehicle status follows, then an audit row
// is appended. r is updated in place.
func Apply(ctx context.Context, tx *repository.Store, r *domain.Rental, to domain.RentalStatus, actorID *int64, note string) error {
	vehicleStatus, ok := domain.NextVehicleStatus(r.Status, to)
	if !ok {
		return apperr.InvalidState("INVALID_TRANSITION",
			fmt.Sprintf("Cannot change rental status from %s to %s", r.Status, to))
	}

	from := r.Status
	r.Status = to
	if err := tx.Rentals.Update(ctx, r); err != nil {
		r.Status = from
		return fmt.Errorf("update rental: %w", err)
	}

	if err := tx.Vehicles.UpdateStatus(ctx, r.VehicleID, vehicleStatus); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("update vehicle status: %w", err)
	}

	audit := &domain.RentalAudit{
		RentalID:  r.ID,
		OldStatus: from,
		NewStatus: to,
		ChangedBy: actorID,
		ChangedAt: time.Now().UTC(),
		Note:      note,
	}
	if err := tx.Audits.Append(ctx, audit); err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}
