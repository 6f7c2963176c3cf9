package worker

import (
	"context"
	"database/sql"

	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -source=worker_service.go -destination=mock/worker_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateWorkerRequest) (WorkerResponse, error)
	GetAll(ctx context.Context, companyID string) ([]WorkerResponse, error)
	GetByID(ctx context.Context, companyID, id string) (WorkerResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateWorkerRequest,
) (WorkerResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidCompanyID
	}
	if !ValidPaymentType(req.PaymentType) {
		return WorkerResponse{}, workererrors.ErrInvalidPaymentType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w := &Worker{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		FullName:      req.FullName,
		Email:         req.Email,
		PaymentType:   req.PaymentType,
		MonthlySalary: req.MonthlySalary,
		HourlyRate:    req.HourlyRate,
		UnitRate:      req.UnitRate,
		Allowance:     req.Allowance,
		Status:        "ACTIVE",
	}

	if err := applyLinks(w, req.UserID, req.GroupID, req.JobBandID, req.ProjectID); err != nil {
		return WorkerResponse{}, err
	}

	if err := qtx.Create(ctx, w); err != nil {
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	return mapToResponse(*w), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]WorkerResponse, error) {
	workers, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		res[i] = mapToResponse(w)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (WorkerResponse, error) {
	w, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return WorkerResponse{}, err
	}
	return mapToResponse(*w), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateWorkerRequest,
) (WorkerResponse, error) {
	if !ValidPaymentType(req.PaymentType) {
		return WorkerResponse{}, workererrors.ErrInvalidPaymentType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return WorkerResponse{}, err
	}

	w.FullName = req.FullName
	w.Email = req.Email
	w.PaymentType = req.PaymentType
	w.MonthlySalary = req.MonthlySalary
	w.HourlyRate = req.HourlyRate
	w.UnitRate = req.UnitRate
	w.Allowance = req.Allowance

	if err := applyLinks(w, nil, req.GroupID, req.JobBandID, req.ProjectID); err != nil {
		return WorkerResponse{}, err
	}

	if err := qtx.Update(ctx, w); err != nil {
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	return mapToResponse(*w), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func applyLinks(w *Worker, userID, groupID, jobBandID, projectID *string) error {
	parse := func(v *string) (*uuid.UUID, error) {
		if v == nil || *v == "" {
			return nil, nil
		}
		id, err := uuid.Parse(*v)
		if err != nil {
			return nil, workererrors.ErrInvalidWorkerID
		}
		return &id, nil
	}

	var err error
	if userID != nil {
		if w.UserID, err = parse(userID); err != nil {
			return err
		}
	}
	if w.GroupID, err = parse(groupID); err != nil {
		return err
	}
	if w.JobBandID, err = parse(jobBandID); err != nil {
		return err
	}
	if w.ProjectID, err = parse(projectID); err != nil {
		return err
	}
	return nil
}

func mapToResponse(w Worker) WorkerResponse {
	resp := WorkerResponse{
		ID:            w.ID.String(),
		CompanyID:     w.CompanyID.String(),
		FullName:      w.FullName,
		Email:         w.Email,
		PaymentType:   w.PaymentType,
		MonthlySalary: w.MonthlySalary,
		HourlyRate:    w.HourlyRate,
		UnitRate:      w.UnitRate,
		Allowance:     w.Allowance,
		Status:        w.Status,
	}

	str := func(id *uuid.UUID) *string {
		if id == nil {
			return nil
		}
		v := id.String()
		return &v
	}
	resp.UserID = str(w.UserID)
	resp.GroupID = str(w.GroupID)
	resp.JobBandID = str(w.JobBandID)
	resp.ProjectID = str(w.ProjectID)

	return resp
}
