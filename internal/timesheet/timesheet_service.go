package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	timesheeterrors "go-payroll/internal/timesheet/errors"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID, actorWorkerID string, canReadAll bool) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TimesheetResponse, error)
	// UpdateEntry replaces (or appends) a single day's entry, reruns the
	// hours engine over it and resums the week totals.
	UpdateEntry(ctx context.Context, companyID, id string, req UpdateEntryRequest) (TimesheetResponse, error)
	// Recalculate reruns the hours engine over every entry of the week
	// under the worker's current settings chain.
	Recalculate(ctx context.Context, companyID, id string) (TimesheetResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	workerRepo worker.Repository
	settings   SettingsResolver
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, workerRepo worker.Repository, settings SettingsResolver, logger *zap.Logger) Service {
	return &service{
		db:         db,
		repo:       repo,
		workerRepo: workerRepo,
		settings:   settings,
		logger:     logger,
	}
}

func (s *service) GetAll(ctx context.Context, companyID, actorWorkerID string, canReadAll bool) ([]TimesheetResponse, error) {
	var (
		rows []WeeklyTimesheet
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		if _, parseErr := uuid.Parse(actorWorkerID); parseErr != nil {
			return nil, timesheeterrors.ErrInvalidWorkerID
		}
		rows, err = s.repo.FindAllByCompanyAndWorker(ctx, companyID, actorWorkerID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]TimesheetResponse, len(rows))
	for i, t := range rows {
		res[i] = mapToResponse(t)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TimesheetResponse, error) {
	t, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
		}
		return TimesheetResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) UpdateEntry(ctx context.Context, companyID, id string, req UpdateEntryRequest) (TimesheetResponse, error) {
	w, t, err := s.loadForWrite(ctx, companyID, id)
	if err != nil {
		return TimesheetResponse{}, err
	}

	entryDate, err := time.Parse("2006-01-02", req.Entry.Date)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrEntryOutsideWeek
	}
	if entryDate.Before(t.WeekStartDate) || entryDate.After(t.WeekStartDate.AddDate(0, 0, 6)) {
		return TimesheetResponse{}, timesheeterrors.ErrEntryOutsideWeek
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	locked, err := qtx.FindByWorkerAndWeekForUpdate(ctx, companyID, t.WorkerID.String(), t.WeekStartDate)
	if err != nil {
		return TimesheetResponse{}, err
	}

	entry := entryFromPayload(req.Entry)
	settings := s.settings.Resolve(ctx, *w)
	ApplyBuckets(&entry, settings)

	if existing := locked.EntryFor(entry.Date); existing != nil {
		*existing = entry
	} else {
		locked.DailyEntries = append(locked.DailyEntries, entry)
	}
	RecomputeTotals(locked)

	if err := qtx.UpdateEntries(ctx, locked); err != nil {
		return TimesheetResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	return mapToResponse(*locked), nil
}

func (s *service) Recalculate(ctx context.Context, companyID, id string) (TimesheetResponse, error) {
	w, t, err := s.loadForWrite(ctx, companyID, id)
	if err != nil {
		return TimesheetResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	locked, err := qtx.FindByWorkerAndWeekForUpdate(ctx, companyID, t.WorkerID.String(), t.WeekStartDate)
	if err != nil {
		return TimesheetResponse{}, err
	}

	settings := s.settings.Resolve(ctx, *w)
	for i := range locked.DailyEntries {
		ApplyBuckets(&locked.DailyEntries[i], settings)
	}
	RecomputeTotals(locked)

	if err := qtx.UpdateEntries(ctx, locked); err != nil {
		return TimesheetResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	s.logger.Info("timesheet recalculated",
		zap.String("timesheet_id", locked.ID.String()),
		zap.Float64("total_hours", locked.TotalHours),
	)
	return mapToResponse(*locked), nil
}

func (s *service) loadForWrite(ctx context.Context, companyID, id string) (*worker.Worker, *WeeklyTimesheet, error) {
	t, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, timesheeterrors.ErrTimesheetNotFound
		}
		return nil, nil, err
	}
	w, err := s.workerRepo.FindByIDAndCompany(ctx, companyID, t.WorkerID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, workererrors.ErrWorkerNotFound
		}
		return nil, nil, err
	}
	return w, t, nil
}

func entryFromPayload(p DailyEntryPayload) DailyEntry {
	e := DailyEntry{
		Date:      p.Date,
		ClockIn:   p.ClockIn,
		ClockOut:  p.ClockOut,
		LunchOut:  p.LunchOut,
		LunchIn:   p.LunchIn,
		IsAbsent:  p.IsAbsent,
		LeaveType: p.LeaveType,
	}
	if p.LeaveType == LeavePublicHoliday && p.NormalHours != nil {
		e.NormalHours = *p.NormalHours
		e.TotalHours = *p.NormalHours
	}
	return e
}

func mapToResponse(t WeeklyTimesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:               t.ID.String(),
		CompanyID:        t.CompanyID.String(),
		WorkerID:         t.WorkerID.String(),
		WeekStartDate:    t.WeekStartDate.Format("2006-01-02"),
		WeekEndDate:      t.WeekEndDate.Format("2006-01-02"),
		TotalNormalHours: t.TotalNormalHours,
		TotalOT15Hours:   t.TotalOT15Hours,
		TotalOT20Hours:   t.TotalOT20Hours,
		TotalHours:       t.TotalHours,
		Status:           t.Status,
	}
	if t.Worker != nil {
		resp.WorkerName = t.Worker.FullName
	}
	fmtTime := func(ts *time.Time) *string {
		if ts == nil {
			return nil
		}
		v := ts.Format(time.RFC3339)
		return &v
	}
	resp.DailyEntries = make([]DailyEntryResponse, len(t.DailyEntries))
	for i, e := range t.DailyEntries {
		resp.DailyEntries[i] = DailyEntryResponse{
			Date:        e.Date,
			ClockIn:     fmtTime(e.ClockIn),
			ClockOut:    fmtTime(e.ClockOut),
			LunchOut:    fmtTime(e.LunchOut),
			LunchIn:     fmtTime(e.LunchIn),
			NormalHours: e.NormalHours,
			OT15Hours:   e.OT15Hours,
			OT20Hours:   e.OT20Hours,
			TotalHours:  e.TotalHours,
			IsAbsent:    e.IsAbsent,
			LeaveType:   e.LeaveType,
		}
	}
	return resp
}
