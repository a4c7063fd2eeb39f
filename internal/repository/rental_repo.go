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

type RentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

type rentalModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	CustomerID  int64           `gorm:"column:customer_id;not null;index"`
	VehicleID   int64           `gorm:"column:vehicle_id;not null;index"`
	UserID      *int64          `gorm:"column:user_id;index"`
	StartDate   datatypes.Date  `gorm:"column:start_date;not null;index"`
	EndDate     datatypes.Date  `gorm:"column:end_date;not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status      string          `gorm:"column:status;size:32;not null;index"`
	Notes       *string         `gorm:"column:notes;type:text"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (rentalModel) TableName() string { return "rentals" }

func toDomainRental(m rentalModel) *domain.Rental {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Rental{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		VehicleID:   m.VehicleID,
		UserID:      m.UserID,
		StartDate:   domain.Day(time.Time(m.StartDate)),
		EndDate:     domain.Day(time.Time(m.EndDate)),
		TotalAmount: m.TotalAmount,
		Status:      domain.RentalStatus(m.Status),
		Notes:       notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toRentalModel(r *domain.Rental) rentalModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}

	return rentalModel{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		UserID:      r.UserID,
		StartDate:   datatypes.Date(domain.Day(r.StartDate)),
		EndDate:     datatypes.Date(domain.Day(r.EndDate)),
		TotalAmount: r.TotalAmount,
		Status:      string(r.Status),
		Notes:       notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainRentals(ms []rentalModel) []domain.Rental {
	out := make([]domain.Rental, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRental(m))
	}
	return out
}

type RentalFilter struct {
	Status     domain.RentalStatus
	VehicleID  int64
	CustomerID int64
	UserID     int64
	// DateFrom and DateTo keep rentals whose range touches the window.
	DateFrom *time.Time
	DateTo   *time.Time
	Query    string
	Offset   int
	Limit    int
}

func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	m := toRentalModel(rental)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*rental = *toDomainRental(m)
	return nil
}

func (r *RentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	var m rentalModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainRental(m), nil
}

func (r *RentalRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	var m rentalModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainRental(m), nil
}

func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	m := toRentalModel(rental)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return translate(err)
	}
	*rental = *toDomainRental(m)
	return nil
}

// ListActiveForVehicle returns the Pending Payment and Ongoing rentals of a vehicle.
func (r *RentalRepository) ListActiveForVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error) {
	var ms []rentalModel
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status IN ?", vehicleID, domain.ActiveRentalStatuses).
		Order("start_date ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toDomainRentals(ms), nil
}

func (r *RentalRepository) HasActiveForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&rentalModel{}).
		Where("vehicle_id = ? AND status IN ?", vehicleID, domain.ActiveRentalStatuses).
		Count(&n).Error
	return n > 0, err
}

func (r *RentalRepository) List(ctx context.Context, f RentalFilter) ([]domain.Rental, int64, error) {
	q := r.db.WithContext(ctx).Model(&rentalModel{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.VehicleID > 0 {
		q = q.Where("vehicle_id = ?", f.VehicleID)
	}
	if f.CustomerID > 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.DateFrom != nil {
		q = q.Where("end_date >= ?", datatypes.Date(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("start_date <= ?", datatypes.Date(*f.DateTo))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		customers := r.db.Model(&domain.Customer{}).Select("id").
			Where("LOWER(full_name) LIKE ? OR LOWER(license_no) LIKE ?", like, like)
		vehicles := r.db.Model(&domain.Vehicle{}).Select("id").
			Where("LOWER(plate_number) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", like, like, like)
		q = q.Where("customer_id IN (?) OR vehicle_id IN (?)", customers, vehicles)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []rentalModel
	if err := page(q, f.Offset, f.Limit).Order("id DESC").Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toDomainRentals(ms), total, nil
}

// ListStartingBetween returns rentals whose start date falls in [from, to].
func (r *RentalRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	var ms []rentalModel
	err := r.db.WithContext(ctx).
		Where("start_date >= ? AND start_date <= ?", datatypes.Date(from), datatypes.Date(to)).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toDomainRentals(ms), nil
}

func (r *RentalRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Rental, error) {
	out := make(map[int64]domain.Rental, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var ms []rentalModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	for _, m := range ms {
		out[m.ID] = *toDomainRental(m)
	}
	return out, nil
}

// ListStalePending returns Pending Payment rentals created before the cutoff.
func (r *RentalRepository) ListStalePending(ctx context.Context, createdBefore time.Time) ([]domain.Rental, error) {
	var ms []rentalModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.RentalPendingPayment, createdBefore.UTC()).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toDomainRentals(ms), nil
}

func (r *RentalRepository) CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&rentalModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.RentalStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.RentalStatus(row.Status)] = row.Count
	}
	return out, nil
}

// CountPickups counts active rentals that start on day.
func (r *RentalRepository) CountPickups(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&rentalModel{}).
		Where("start_date = ? AND status IN ?", datatypes.Date(day), domain.ActiveRentalStatuses).
		Count(&n).Error
	return n, err
}

// CountReturns counts ongoing rentals due back on day.
func (r *RentalRepository) CountReturns(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&rentalModel{}).
		Where("end_date = ? AND status = ?", datatypes.Date(day), domain.RentalOngoing).
		Count(&n).Error
	return n, err
}
