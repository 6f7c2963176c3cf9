package checkin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/attendance"
	checkinerrors "go-payroll/internal/checkin/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=checkin_service.go -destination=mock/checkin_service_mock.go -package=mock

// Service routes a worker's clock event to the record type their payment
// model uses: monthly-salary workers get a per-day attendance record,
// hourly and unit-based workers get a day entry inside a weekly
// timesheet.
type Service interface {
	Record(ctx context.Context, companyID, workerID string, req RecordRequest) (RecordResponse, error)
	Status(ctx context.Context, companyID, workerID string) (StatusResponse, error)
}

type service struct {
	db             *sql.DB
	workerRepo     worker.Repository
	attendanceRepo attendance.Repository
	timesheetRepo  timesheet.Repository
	settings       timesheet.SettingsResolver
	outboxRepo     kafka.OutboxRepository
	logger         *zap.Logger
}

func NewService(
	db *sql.DB,
	workerRepo worker.Repository,
	attendanceRepo attendance.Repository,
	timesheetRepo timesheet.Repository,
	settings timesheet.SettingsResolver,
	outboxRepo kafka.OutboxRepository,
	logger *zap.Logger,
) Service {
	return &service{
		db:             db,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		timesheetRepo:  timesheetRepo,
		settings:       settings,
		outboxRepo:     outboxRepo,
		logger:         logger,
	}
}

func (s *service) Record(ctx context.Context, companyID, workerID string, req RecordRequest) (RecordResponse, error) {
	if workerID == "" {
		return RecordResponse{}, workererrors.ErrWorkerNotLinked
	}
	if companyID == "" {
		return RecordResponse{}, checkinerrors.ErrMissingCompany
	}

	action, ok := ParseAction(req.Action)
	if !ok {
		return RecordResponse{}, checkinerrors.ErrUnknownAction
	}

	w, err := s.workerRepo.FindByIDAndCompany(ctx, companyID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, workererrors.ErrWorkerNotFound
		}
		// read failures surface as errors; proceeding as if no worker
		// existed would turn a transient outage into bad writes
		return RecordResponse{}, err
	}

	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	method := attendance.MethodManual
	if req.QRCode != nil && *req.QRCode != "" {
		method = attendance.MethodQR
	}

	if w.IsMonthlySalary() {
		err = s.recordAttendance(ctx, w, action, ts, method, req)
	} else {
		err = s.recordTimesheet(ctx, w, action, ts, req)
	}
	if err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("check-in recorded",
		zap.String("worker_id", w.ID.String()),
		zap.String("action", string(action)),
		zap.String("payment_type", w.PaymentType),
	)

	return RecordResponse{
		Action:  string(action),
		Time:    ts.Format(time.RFC3339),
		Method:  method,
		Message: action.Message(),
	}, nil
}

func (s *service) recordAttendance(ctx context.Context, w *worker.Worker, action Action, ts time.Time, method string, req RecordRequest) error {
	rec := &attendance.Record{
		ID:             uuid.New(),
		CompanyID:      w.CompanyID,
		WorkerID:       w.ID,
		AttendanceDate: dayOf(ts),
		CheckInMethod:  method,
		Status:         attendance.StatusPresent,
	}
	action.applyToRecord(rec, ts)
	if action == ActionClockIn {
		rec.QRCodeData = req.QRCode
		rec.Location = req.Location
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.attendanceRepo.WithTx(tx).Upsert(ctx, rec); err != nil {
		return err
	}
	if err := s.enqueueEvent(ctx, tx, w, action, method, ts); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) recordTimesheet(ctx context.Context, w *worker.Worker, action Action, ts time.Time, req RecordRequest) error {
	weekStart := timesheet.WeekStart(ts)

	// the empty week row is inserted outside the transaction so the
	// FOR UPDATE read below always has a row to lock; the upsert makes
	// concurrent inserts converge on one row and revives a soft-deleted
	// week
	if err := s.timesheetRepo.EnsureWeek(ctx, w.CompanyID, w.ID, weekStart); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.timesheetRepo.WithTx(tx)

	week, err := qtx.FindByWorkerAndWeekForUpdate(ctx, w.CompanyID.String(), w.ID.String(), weekStart)
	if err != nil {
		return err
	}

	today := dayOf(ts).Format("2006-01-02")
	entry := week.EntryFor(today)
	if entry == nil {
		week.DailyEntries = append(week.DailyEntries, timesheet.DailyEntry{Date: today})
		entry = &week.DailyEntries[len(week.DailyEntries)-1]
	}

	action.applyToEntry(entry, ts)
	if action == ActionClockIn {
		entry.QRCodeData = req.QRCode
		entry.Location = req.Location
	}

	settings := s.settings.Resolve(ctx, *w)
	timesheet.ApplyBuckets(entry, settings)
	timesheet.RecomputeTotals(week)

	if err := qtx.UpdateEntries(ctx, week); err != nil {
		return err
	}

	method := attendance.MethodManual
	if req.QRCode != nil && *req.QRCode != "" {
		method = attendance.MethodQR
	}
	if err := s.enqueueEvent(ctx, tx, w, action, method, ts); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, w *worker.Worker, action Action, method string, ts time.Time) error {
	payload, err := json.Marshal(events.CheckInRecordedEvent{
		EventType: "checkin.recorded",
		WorkerID:  w.ID.String(),
		CompanyID: w.CompanyID.String(),
		Action:    string(action),
		Method:    method,
		Timestamp: ts,
	})
	if err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "checkin",
		AggregateID:   w.ID.String(),
		EventType:     "checkin.recorded",
		Topic:         events.CheckInRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Status(ctx context.Context, companyID, workerID string) (StatusResponse, error) {
	if workerID == "" {
		return StatusResponse{}, workererrors.ErrWorkerNotLinked
	}

	w, err := s.workerRepo.FindByIDAndCompany(ctx, companyID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{}, workererrors.ErrWorkerNotFound
		}
		return StatusResponse{}, err
	}

	now := time.Now()
	if w.IsMonthlySalary() {
		rec, err := s.attendanceRepo.FindByWorkerAndDate(ctx, companyID, workerID, dayOf(now))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return StatusResponse{}, nil
			}
			return StatusResponse{}, err
		}
		method := rec.CheckInMethod
		return StatusResponse{
			HasCheckedIn:  rec.ClockIn != nil,
			ClockIn:       fmtTime(rec.ClockIn),
			ClockOut:      fmtTime(rec.ClockOut),
			LunchOut:      fmtTime(rec.LunchOut),
			LunchIn:       fmtTime(rec.LunchIn),
			CheckInMethod: &method,
		}, nil
	}

	week, err := s.timesheetRepo.FindByWorkerAndWeek(ctx, companyID, workerID, timesheet.WeekStart(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{}, nil
		}
		return StatusResponse{}, err
	}
	entry := week.EntryFor(dayOf(now).Format("2006-01-02"))
	if entry == nil {
		return StatusResponse{}, nil
	}
	method := attendance.MethodManual
	if entry.QRCodeData != nil {
		method = attendance.MethodQR
	}
	return StatusResponse{
		HasCheckedIn:  entry.ClockIn != nil,
		ClockIn:       fmtTime(entry.ClockIn),
		ClockOut:      fmtTime(entry.ClockOut),
		LunchOut:      fmtTime(entry.LunchOut),
		LunchIn:       fmtTime(entry.LunchIn),
		CheckInMethod: &method,
	}, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func fmtTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
