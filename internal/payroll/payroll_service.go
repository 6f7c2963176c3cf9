package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/compensation"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	// Generate collects the worker's period hours, resolves the
	// deduction layer and creates a DRAFT payroll, reducing loan
	// balances and queueing the generated event in the same
	// transaction.
	Generate(ctx context.Context, companyID, actorID string, req GenerateRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db            *sql.DB
	repo          Repository
	workerRepo    worker.Repository
	timesheetRepo timesheet.Repository
	configRepo    compensation.ConfigRepository
	loanRepo      compensation.LoanRepository
	counterRepo   counter.Repository
	outboxRepo    kafka.OutboxRepository
	audit         bootstrap.AuditLogger
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workerRepo worker.Repository,
	timesheetRepo timesheet.Repository,
	configRepo compensation.ConfigRepository,
	loanRepo compensation.LoanRepository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) Service {
	return &service{
		db:            db,
		repo:          repo,
		workerRepo:    workerRepo,
		timesheetRepo: timesheetRepo,
		configRepo:    configRepo,
		loanRepo:      loanRepo,
		counterRepo:   counterRepo,
		outboxRepo:    outboxRepo,
		audit:         audit,
		logger:        logger,
	}
}

func (s *service) Generate(ctx context.Context, companyID, actorID string, req GenerateRequest) (PayrollResponse, error) {
	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}
	if periodStart.After(periodEnd) {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, workererrors.ErrInvalidWorkerID
	}

	w, err := s.workerRepo.FindByIDAndCompany(ctx, companyID, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, workererrors.ErrWorkerNotFound
		}
		return PayrollResponse{}, err
	}

	var buckets timesheet.HourBuckets
	if !w.IsMonthlySalary() {
		weeks, err := s.timesheetRepo.FindByWorkerAndRange(
			ctx, companyID, w.ID.String(),
			timesheet.WeekStart(periodStart), periodEnd,
		)
		if err != nil {
			return PayrollResponse{}, err
		}
		buckets = PeriodBuckets(weeks, req.PeriodStart, req.PeriodEnd)
	}

	configs, err := s.configRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return PayrollResponse{}, err
	}
	resolution := compensation.Resolve(*w, configs)

	loans, err := s.loanRepo.FindActiveByWorker(ctx, companyID, w.ID.String())
	if err != nil {
		return PayrollResponse{}, err
	}

	gross := GrossPay(*w, buckets)
	breakdown := ComposeDeductions(gross, resolution, loans, req.OtherDeductions)

	seq, err := s.counterRepo.GetNextValue(ctx, companyID, counter.TypePayrollNumber)
	if err != nil {
		return PayrollResponse{}, err
	}

	p := &Payroll{
		ID:            uuid.New(),
		PayrollNumber: fmt.Sprintf("PAY-%d-%06d", periodStart.Year(), seq),
		CompanyID:     w.CompanyID,
		WorkerID:      w.ID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,

		NormalHours: buckets.NormalHours,
		OT15Hours:   buckets.OT15Hours,
		OT20Hours:   buckets.OT20Hours,

		GrossPay: gross,

		EPFEmployee:   breakdown.EPF.Employee,
		EPFEmployer:   breakdown.EPF.Employer,
		SOCSOEmployee: breakdown.SOCSO.Employee,
		SOCSOEmployer: breakdown.SOCSO.Employer,
		EISEmployee:   breakdown.EIS.Employee,
		EISEmployer:   breakdown.EIS.Employer,

		CustomDeductions: breakdown.CustomDeductions,
		LoanDeductions:   breakdown.LoanDeductions,
		OtherDeductions:  breakdown.OtherDeductions,
		TotalDeductions:  breakdown.TotalDeductions,
		NetPay:           breakdown.NetPay,

		DeductionConfigType:   resolution.SourceType,
		DeductionConfigSource: resolution.SourceName,

		Status:    StatusDraft,
		CreatedBy: actorUUID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, w.ID.String(), periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrOverlappingPeriod
	}

	if err := qtx.Create(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	loanQtx := s.loanRepo.WithTx(tx)
	for _, app := range breakdown.LoanApplications {
		if err := loanQtx.ApplyInstallment(ctx, app.LoanID, app.Applied); err != nil {
			return PayrollResponse{}, err
		}
	}

	payload, err := json.Marshal(events.PayrollGeneratedEvent{
		EventType:   "payroll.generated",
		PayrollID:   p.ID.String(),
		WorkerID:    p.WorkerID.String(),
		CompanyID:   p.CompanyID.String(),
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		NetPay:      p.NetPay,
		GeneratedBy: actorID,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		return PayrollResponse{}, err
	}
	err = s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   p.ID.String(),
		EventType:     "payroll.generated",
		Topic:         events.PayrollGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll generated",
		zap.String("payroll_number", p.PayrollNumber),
		zap.String("worker_id", p.WorkerID.String()),
		zap.Int64("net_pay", p.NetPay),
		zap.String("config_source", p.DeductionConfigSource),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if p.Status != StatusDraft {
		return PayrollResponse{}, payrollerrors.ErrNotDraft
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, workererrors.ErrInvalidWorkerID
	}

	now := time.Now()
	p.Status = StatusApproved
	p.ApprovedBy = &actorUUID
	p.ApprovedAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "payroll.approve",
		Message: "payroll approved",
		Meta: map[string]any{
			"payroll_id": p.ID.String(),
			"actor_id":   actorID,
		},
	})
	return mapToResponse(*p), nil
}

func (s *service) MarkAsPaid(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if p.Status != StatusApproved {
		return PayrollResponse{}, payrollerrors.ErrNotApproved
	}

	now := time.Now()
	p.Status = StatusPaid
	p.PaidAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "payroll.mark_paid",
		Message: "payroll marked as paid",
		Meta: map[string]any{
			"payroll_id": p.ID.String(),
			"actor_id":   actorID,
		},
	})
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrPayrollNotFound
		}
		return err
	}
	if p.Status != StatusDraft {
		return payrollerrors.ErrNotDraft
	}
	return s.repo.Delete(ctx, companyID, id)
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:            p.ID.String(),
		PayrollNumber: p.PayrollNumber,
		WorkerID:      p.WorkerID.String(),
		PeriodStart:   p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     p.PeriodEnd.Format("2006-01-02"),

		NormalHours: p.NormalHours,
		OT15Hours:   p.OT15Hours,
		OT20Hours:   p.OT20Hours,

		GrossPay: p.GrossPay,

		EPF:   StatutoryPairResponse{Employee: p.EPFEmployee, Employer: p.EPFEmployer},
		SOCSO: StatutoryPairResponse{Employee: p.SOCSOEmployee, Employer: p.SOCSOEmployer},
		EIS:   StatutoryPairResponse{Employee: p.EISEmployee, Employer: p.EISEmployer},

		CustomDeductions: p.CustomDeductions,
		LoanDeductions:   p.LoanDeductions,
		OtherDeductions:  p.OtherDeductions,
		TotalDeductions:  p.TotalDeductions,
		NetPay:           p.NetPay,

		DeductionConfigType:   p.DeductionConfigType,
		DeductionConfigSource: p.DeductionConfigSource,

		Status: p.Status,
	}
	if p.Worker != nil {
		resp.WorkerName = p.Worker.FullName
	}
	if p.ApprovedAt != nil {
		v := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}
