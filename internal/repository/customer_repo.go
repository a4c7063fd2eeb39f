package repository

import (
	"context"
	"strings"

	"carrental/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type CustomerFilter struct {
	Query  string
	Offset int
	Limit  int
}

func NormalizeLicense(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	c.LicenseNo = NormalizeLicense(c.LicenseNo)
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

// UpsertByLicense inserts c or, when the license is already registered,
// refreshes the contact fields of the existing row. c is reloaded from the
// stored row so callers always see the canonical id.
func (r *CustomerRepository) UpsertByLicense(ctx context.Context, c *domain.Customer) error {
	c.LicenseNo = NormalizeLicense(c.LicenseNo)

	refresh := []string{"email", "phone", "updated_at"}
	if c.Address != "" {
		refresh = append(refresh, "address")
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "license_no"}},
			DoUpdates: clause.AssignmentColumns(refresh),
		}).
		Create(c).Error
	if err != nil {
		return translate(err)
	}

	var stored domain.Customer
	if err := r.db.WithContext(ctx).Where("license_no = ?", c.LicenseNo).First(&stored).Error; err != nil {
		return translate(err)
	}
	*c = stored
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CustomerRepository) GetByLicense(ctx context.Context, licenseNo string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).
		Where("license_no = ?", NormalizeLicense(licenseNo)).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.LicenseNo = NormalizeLicense(c.LicenseNo)
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *CustomerRepository) List(ctx context.Context, f CustomerFilter) ([]domain.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Customer{})
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ? OR LOWER(license_no) LIKE ?",
			like, like, "%"+s+"%", like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []domain.Customer
	if err := page(q, f.Offset, f.Limit).Order("full_name ASC, id ASC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&n).Error
	return n, err
}

// ListByIDs returns customers keyed by id.
func (r *CustomerRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Customer, error) {
	out := make(map[int64]domain.Customer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Customer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}
