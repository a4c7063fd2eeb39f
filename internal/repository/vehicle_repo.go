package repository

import (
	"context"
	"strings"
	"time"

	"carrental/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type VehicleSort string

const (
	SortRateAsc  VehicleSort = "rate_asc"
	SortRateDesc VehicleSort = "rate_desc"
	SortNewest   VehicleSort = "newest"
	SortBrand    VehicleSort = "brand"
	SortSeats    VehicleSort = "seats"
)

var vehicleOrder = map[VehicleSort]string{
	SortRateAsc:  "daily_rate ASC, id ASC",
	SortRateDesc: "daily_rate DESC, id ASC",
	SortNewest:   "created_at DESC, id DESC",
	SortBrand:    "brand ASC, model ASC, id ASC",
	SortSeats:    "seats DESC, id ASC",
}

func ValidVehicleSort(s VehicleSort) bool {
	_, ok := vehicleOrder[s]
	return ok
}

type VehicleFilter struct {
	Category      string
	Location      string
	Brand         string
	Query         string
	MinSeats      int
	HasAC         *bool
	Status        domain.VehicleStatus
	ExcludeStatus []domain.VehicleStatus
	MinRate       *decimal.Decimal
	MaxRate       *decimal.Decimal
	// AvailableFrom and AvailableTo drop vehicles holding an active rental that
	// overlaps the range. Both must be set to take effect.
	AvailableFrom *time.Time
	AvailableTo   *time.Time
	Sort          VehicleSort
	Offset        int
	Limit         int
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
// SQLite ignores the locking clause; its single writer gives the same effect.
func (r *VehicleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	return translate(r.db.WithContext(ctx).Save(v).Error)
}

func (r *VehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) List(ctx context.Context, f VehicleFilter) ([]domain.Vehicle, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vehicle{})

	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.Brand != "" {
		q = q.Where("LOWER(brand) = ?", strings.ToLower(f.Brand))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(plate_number) LIKE ?", like, like, like)
	}
	if f.MinSeats > 0 {
		q = q.Where("seats >= ?", f.MinSeats)
	}
	if f.HasAC != nil {
		q = q.Where("has_ac = ?", *f.HasAC)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.ExcludeStatus) > 0 {
		q = q.Where("status NOT IN ?", f.ExcludeStatus)
	}
	if f.MinRate != nil {
		q = q.Where("daily_rate >= ?", *f.MinRate)
	}
	if f.MaxRate != nil {
		q = q.Where("daily_rate <= ?", *f.MaxRate)
	}
	// A bookable vehicle is Available now and free of active rentals in the window.
	if f.AvailableFrom != nil && f.AvailableTo != nil {
		q = q.Where("status = ?", domain.VehicleAvailable)
		busy := r.db.Model(&rentalModel{}).
			Select("vehicle_id").
			Where("status IN ?", domain.ActiveRentalStatuses).
			Where("start_date <= ? AND end_date >= ?", datatypes.Date(*f.AvailableTo), datatypes.Date(*f.AvailableFrom))
		q = q.Where("id NOT IN (?)", busy)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := vehicleOrder[f.Sort]
	if !ok {
		order = "id ASC"
	}

	var vehicles []domain.Vehicle
	if err := page(q, f.Offset, f.Limit).Order(order).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *VehicleRepository) CountByStatus(ctx context.Context) (map[domain.VehicleStatus]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.VehicleStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.VehicleStatus(row.Status)] = row.Count
	}
	return out, nil
}

// ListByIDs returns vehicles keyed by id.
func (r *VehicleRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Vehicle, error) {
	out := make(map[int64]domain.Vehicle, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Vehicle
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, v := range rows {
		out[v.ID] = v
	}
	return out, nil
}
