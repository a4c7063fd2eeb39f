package customer

import (
	"context"
	"strings"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

// Upsert registers the customer by license number within the caller's
// transaction. A returning customer keeps their id and name; contact details
// are refreshed.
func Upsert(ctx context.Context, tx *repository.Store, info Info) (*domain.Customer, error) {
	c := &domain.Customer{
		FullName:  strings.TrimSpace(info.FullName),
		Email:     strings.TrimSpace(info.Email),
		Phone:     strings.TrimSpace(info.Phone),
		LicenseNo: info.LicenseNo,
		Address:   strings.TrimSpace(info.Address),
	}
	if err := tx.Customers.UpsertByLicense(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
