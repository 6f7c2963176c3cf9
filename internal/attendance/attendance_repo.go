package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Upsert inserts the day's record or patches the clock columns the
	// record carries non-nil values for. Atomic on (company, worker, date)
	// so two concurrent taps can never produce duplicate rows.
	Upsert(ctx context.Context, rec *Record) error
	FindByWorkerAndDate(ctx context.Context, companyID, workerID string, date time.Time) (*Record, error)
	FindByWorkerAndRange(ctx context.Context, companyID, workerID string, from, to time.Time) ([]Record, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Record, error)
	FindAllByCompanyAndWorker(ctx context.Context, companyID, workerID string) ([]Record, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

const upsertQuery = `
	INSERT INTO attendance_records (
		id, company_id, worker_id, attendance_date,
		clock_in, clock_out, lunch_out, lunch_in,
		check_in_method, qr_code_data, location, status,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
	ON CONFLICT (company_id, worker_id, attendance_date) DO UPDATE SET
		clock_in = COALESCE(EXCLUDED.clock_in, attendance_records.clock_in),
		clock_out = COALESCE(EXCLUDED.clock_out, attendance_records.clock_out),
		lunch_out = COALESCE(EXCLUDED.lunch_out, attendance_records.lunch_out),
		lunch_in = COALESCE(EXCLUDED.lunch_in, attendance_records.lunch_in),
		check_in_method = CASE
			WHEN EXCLUDED.clock_in IS NOT NULL THEN EXCLUDED.check_in_method
			ELSE attendance_records.check_in_method
		END,
		qr_code_data = CASE
			WHEN EXCLUDED.clock_in IS NOT NULL THEN COALESCE(EXCLUDED.qr_code_data, attendance_records.qr_code_data)
			ELSE attendance_records.qr_code_data
		END,
		location = CASE
			WHEN EXCLUDED.clock_in IS NOT NULL THEN COALESCE(EXCLUDED.location, attendance_records.location)
			ELSE attendance_records.location
		END,
		updated_at = now()
`

func (r *repository) Upsert(ctx context.Context, rec *Record) error {
	// COALESCE keeps existing columns when the incoming record does not set
	// them, so each action patches exactly one clock field. Check-in
	// metadata (method, qr, location) only travels with a clock_in value.
	args := []any{
		rec.ID, rec.CompanyID, rec.WorkerID, rec.AttendanceDate.Format("2006-01-02"),
		rec.ClockIn, rec.ClockOut, rec.LunchOut, rec.LunchIn,
		rec.CheckInMethod, rec.QRCodeData, rec.Location, rec.Status,
	}
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, upsertQuery, args...)
		return err
	}
	return r.db.WithContext(ctx).Exec(upsertQuery, args...).Error
}

func (r *repository) FindByWorkerAndDate(ctx context.Context, companyID, workerID string, date time.Time) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindByWorkerAndRange(ctx context.Context, companyID, workerID string, from, to time.Time) ([]Record, error) {
	var recs []Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("attendance_date >= ? AND attendance_date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Record, error) {
	var recs []Record
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Scopes(tenant.Scope(companyID)).
		Order("attendance_date DESC, clock_in DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindAllByCompanyAndWorker(ctx context.Context, companyID, workerID string) ([]Record, error) {
	var recs []Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Order("attendance_date DESC").
		Find(&recs).Error
	return recs, err
}
