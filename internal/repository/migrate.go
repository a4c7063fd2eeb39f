package repository

import (
	"fmt"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. On PostgreSQL it also installs the
// exclusion constraint that rejects overlapping active rentals per vehicle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Vehicle{},
		&domain.Customer{},
		&rentalModel{},
		&domain.Payment{},
		&domain.RentalAudit{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'rentals_no_overlap') THEN
    ALTER TABLE rentals ADD CONSTRAINT rentals_no_overlap
      EXCLUDE USING gist (vehicle_id WITH =, daterange(start_date, end_date, '[]') WITH &&)
      WHERE (status IN ('Pending Payment', 'Ongoing'));
  END IF;
END $$`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("postgres constraints: %w", err)
		}
	}
	return nil
}
