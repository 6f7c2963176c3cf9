package attendance

import (
	"context"
	"time"

	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID, actorWorkerID string, canReadAll bool) ([]RecordResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context, companyID, actorWorkerID string, canReadAll bool) ([]RecordResponse, error) {
	var (
		rows []Record
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		if _, parseErr := uuid.Parse(actorWorkerID); parseErr != nil {
			return nil, apperror.New(apperror.CodeInvalidInput, "invalid worker id", 400)
		}
		rows, err = s.repo.FindAllByCompanyAndWorker(ctx, companyID, actorWorkerID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		res[i] = MapToResponse(r)
	}
	return res, nil
}

// MapToResponse is exported because the check-in router renders the same
// shape from its own status endpoint.
func MapToResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:             rec.ID.String(),
		CompanyID:      rec.CompanyID.String(),
		WorkerID:       rec.WorkerID.String(),
		AttendanceDate: rec.AttendanceDate.Format("2006-01-02"),
		CheckInMethod:  rec.CheckInMethod,
		Location:       rec.Location,
		Status:         rec.Status,
	}
	if rec.Worker != nil {
		resp.WorkerName = rec.Worker.FullName
	}
	fmtTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		v := t.Format(time.RFC3339)
		return &v
	}
	resp.ClockIn = fmtTime(rec.ClockIn)
	resp.ClockOut = fmtTime(rec.ClockOut)
	resp.LunchOut = fmtTime(rec.LunchOut)
	resp.LunchIn = fmtTime(rec.LunchIn)
	return resp
}
