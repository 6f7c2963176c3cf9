package timesheet

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// EnsureWeek inserts an empty week row if none exists yet. Atomic on
	// (company, worker, week_start_date): concurrent check-ins for the
	// same week both land on the single surviving row. A soft-deleted
	// week is revived instead of conflicting, so a deleted timesheet
	// never blocks future check-ins for that week.
	EnsureWeek(ctx context.Context, companyID, workerID uuid.UUID, weekStart time.Time) error
	FindByWorkerAndWeek(ctx context.Context, companyID, workerID string, weekStart time.Time) (*WeeklyTimesheet, error)
	// FindByWorkerAndWeekForUpdate row-locks the week so the
	// read-modify-write of the entries array serializes per worker+week.
	// Must run inside a transaction.
	FindByWorkerAndWeekForUpdate(ctx context.Context, companyID, workerID string, weekStart time.Time) (*WeeklyTimesheet, error)
	UpdateEntries(ctx context.Context, t *WeeklyTimesheet) error
	FindByID(ctx context.Context, companyID, id string) (*WeeklyTimesheet, error)
	FindByWorkerAndRange(ctx context.Context, companyID, workerID string, from, to time.Time) ([]WeeklyTimesheet, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]WeeklyTimesheet, error)
	FindAllByCompanyAndWorker(ctx context.Context, companyID, workerID string) ([]WeeklyTimesheet, error)
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

func (r *repository) EnsureWeek(ctx context.Context, companyID, workerID uuid.UUID, weekStart time.Time) error {
	weekEnd := weekStart.AddDate(0, 0, 6)
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO weekly_timesheets (
			id, company_id, worker_id, week_start_date, week_end_date,
			daily_entries, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, '[]'::jsonb, 'DRAFT', now(), now())
		ON CONFLICT (company_id, worker_id, week_start_date)
		DO UPDATE SET deleted_at = NULL, updated_at = now()
		WHERE weekly_timesheets.deleted_at IS NOT NULL
	`,
		uuid.New(), companyID, workerID,
		weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02"),
	).Error
}

func (r *repository) FindByWorkerAndWeek(ctx context.Context, companyID, workerID string, weekStart time.Time) (*WeeklyTimesheet, error) {
	var t WeeklyTimesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("week_start_date = ?", weekStart.Format("2006-01-02")).
		First(&t).Error
	return &t, err
}

func (r *repository) FindByWorkerAndWeekForUpdate(ctx context.Context, companyID, workerID string, weekStart time.Time) (*WeeklyTimesheet, error) {
	// Raw SQL through the transaction so the row lock is held until
	// commit; a gorm call here would lock on a different connection.
	if r.tx == nil {
		var t WeeklyTimesheet
		err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(tenant.Scope(companyID)).
			Where("worker_id = ?", workerID).
			Where("week_start_date = ?", weekStart.Format("2006-01-02")).
			First(&t).Error
		return &t, err
	}

	var t WeeklyTimesheet
	row := r.tx.QueryRowContext(ctx, `
		SELECT id, company_id, worker_id, week_start_date, week_end_date,
		       daily_entries, total_normal_hours, total_ot_1_5_hours,
		       total_ot_2_0_hours, total_hours, status
		FROM weekly_timesheets
		WHERE company_id = $1 AND worker_id = $2 AND week_start_date = $3
		  AND deleted_at IS NULL
		FOR UPDATE
	`, companyID, workerID, weekStart.Format("2006-01-02"))
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.WorkerID, &t.WeekStartDate, &t.WeekEndDate,
		&t.DailyEntries, &t.TotalNormalHours, &t.TotalOT15Hours,
		&t.TotalOT20Hours, &t.TotalHours, &t.Status,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) UpdateEntries(ctx context.Context, t *WeeklyTimesheet) error {
	// The whole entries array is written back together with the resummed
	// totals; per-entry patches are never issued.
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE weekly_timesheets
			SET daily_entries = $1,
			    total_normal_hours = $2,
			    total_ot_1_5_hours = $3,
			    total_ot_2_0_hours = $4,
			    total_hours = $5,
			    updated_at = now()
			WHERE id = $6
		`, t.DailyEntries, t.TotalNormalHours, t.TotalOT15Hours,
			t.TotalOT20Hours, t.TotalHours, t.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&WeeklyTimesheet{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"daily_entries":      t.DailyEntries,
			"total_normal_hours": t.TotalNormalHours,
			"total_ot_1_5_hours": t.TotalOT15Hours,
			"total_ot_2_0_hours": t.TotalOT20Hours,
			"total_hours":        t.TotalHours,
			"updated_at":         time.Now(),
		}).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*WeeklyTimesheet, error) {
	var t WeeklyTimesheet
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindByWorkerAndRange(ctx context.Context, companyID, workerID string, from, to time.Time) ([]WeeklyTimesheet, error) {
	var ts []WeeklyTimesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("week_start_date >= ? AND week_start_date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("week_start_date ASC").
		Find(&ts).Error
	return ts, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]WeeklyTimesheet, error) {
	var ts []WeeklyTimesheet
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Scopes(tenant.Scope(companyID)).
		Order("week_start_date DESC").
		Find(&ts).Error
	return ts, err
}

func (r *repository) FindAllByCompanyAndWorker(ctx context.Context, companyID, workerID string) ([]WeeklyTimesheet, error) {
	var ts []WeeklyTimesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Order("week_start_date DESC").
		Find(&ts).Error
	return ts, err
}
