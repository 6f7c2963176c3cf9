package compensation

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	compensationerrors "go-payroll/internal/compensation/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	CreateConfig(ctx context.Context, companyID string, req CreateConfigRequest) (ConfigResponse, error)
	GetConfigs(ctx context.Context, companyID string) ([]ConfigResponse, error)
	UpdateConfig(ctx context.Context, companyID, id string, req UpdateConfigRequest) (ConfigResponse, error)
	DeleteConfig(ctx context.Context, companyID, id string) error

	CreateLoan(ctx context.Context, companyID string, req CreateLoanRequest) (LoanResponse, error)
	GetLoans(ctx context.Context, companyID string) ([]LoanResponse, error)
	SettleLoan(ctx context.Context, companyID, id string) (LoanResponse, error)
}

type service struct {
	db         *sql.DB
	configRepo ConfigRepository
	loanRepo   LoanRepository
}

func NewService(db *sql.DB, configRepo ConfigRepository, loanRepo LoanRepository) Service {
	return &service{db: db, configRepo: configRepo, loanRepo: loanRepo}
}

func (s *service) CreateConfig(ctx context.Context, companyID string, req CreateConfigRequest) (ConfigResponse, error) {
	if !ValidConfigType(req.ConfigType) {
		return ConfigResponse{}, compensationerrors.ErrInvalidConfigType
	}

	c := &DeductionConfig{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		ConfigType: req.ConfigType,
		TargetID:   uuid.MustParse(req.TargetID),
		TargetName: req.TargetName,

		EPFEnabled:           req.EPF.Enabled,
		EPFEmployeeRateBps:   req.EPF.EmployeeBps,
		EPFEmployerRateBps:   req.EPF.EmployerBps,
		SOCSOEnabled:         req.SOCSO.Enabled,
		SOCSOEmployeeRateBps: req.SOCSO.EmployeeBps,
		SOCSOEmployerRateBps: req.SOCSO.EmployerBps,
		EISEnabled:           req.EIS.Enabled,
		EISEmployeeRateBps:   req.EIS.EmployeeBps,
		EISEmployerRateBps:   req.EIS.EmployerBps,

		CustomDeductions: customFromPayload(req.CustomDeductions),
	}

	if err := s.configRepo.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return ConfigResponse{}, compensationerrors.ErrDuplicateConfig
		}
		return ConfigResponse{}, err
	}
	return mapConfigToResponse(*c), nil
}

func (s *service) GetConfigs(ctx context.Context, companyID string) ([]ConfigResponse, error) {
	configs, err := s.configRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]ConfigResponse, len(configs))
	for i, c := range configs {
		res[i] = mapConfigToResponse(c)
	}
	return res, nil
}

func (s *service) UpdateConfig(ctx context.Context, companyID, id string, req UpdateConfigRequest) (ConfigResponse, error) {
	c, err := s.configRepo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigResponse{}, compensationerrors.ErrConfigNotFound
		}
		return ConfigResponse{}, err
	}

	if req.TargetName != "" {
		c.TargetName = req.TargetName
	}
	if req.EPF != nil {
		c.EPFEnabled = req.EPF.Enabled
		c.EPFEmployeeRateBps = req.EPF.EmployeeBps
		c.EPFEmployerRateBps = req.EPF.EmployerBps
	}
	if req.SOCSO != nil {
		c.SOCSOEnabled = req.SOCSO.Enabled
		c.SOCSOEmployeeRateBps = req.SOCSO.EmployeeBps
		c.SOCSOEmployerRateBps = req.SOCSO.EmployerBps
	}
	if req.EIS != nil {
		c.EISEnabled = req.EIS.Enabled
		c.EISEmployeeRateBps = req.EIS.EmployeeBps
		c.EISEmployerRateBps = req.EIS.EmployerBps
	}
	if req.CustomDeductions != nil {
		c.CustomDeductions = customFromPayload(req.CustomDeductions)
	}

	if err := s.configRepo.Update(ctx, c); err != nil {
		return ConfigResponse{}, err
	}
	return mapConfigToResponse(*c), nil
}

func (s *service) DeleteConfig(ctx context.Context, companyID, id string) error {
	if _, err := s.configRepo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return compensationerrors.ErrConfigNotFound
		}
		return err
	}
	return s.configRepo.Delete(ctx, companyID, id)
}

func (s *service) CreateLoan(ctx context.Context, companyID string, req CreateLoanRequest) (LoanResponse, error) {
	l := &Loan{
		ID:               uuid.New(),
		CompanyID:        uuid.MustParse(companyID),
		WorkerID:         uuid.MustParse(req.WorkerID),
		Name:             req.Name,
		Principal:        req.Principal,
		RemainingBalance: req.Principal,
		Installment:      req.Installment,
		Status:           LoanActive,
	}
	if err := s.loanRepo.Create(ctx, l); err != nil {
		return LoanResponse{}, err
	}
	return mapLoanToResponse(*l), nil
}

func (s *service) GetLoans(ctx context.Context, companyID string) ([]LoanResponse, error) {
	loans, err := s.loanRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = mapLoanToResponse(l)
	}
	return res, nil
}

func (s *service) SettleLoan(ctx context.Context, companyID, id string) (LoanResponse, error) {
	l, err := s.loanRepo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, compensationerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}
	if l.Status == LoanSettled {
		return LoanResponse{}, compensationerrors.ErrLoanSettled
	}

	l.RemainingBalance = 0
	l.Status = LoanSettled
	if err := s.loanRepo.Update(ctx, l); err != nil {
		return LoanResponse{}, err
	}
	return mapLoanToResponse(*l), nil
}

func customFromPayload(payloads []CustomDeductionPayload) CustomDeductions {
	out := make(CustomDeductions, len(payloads))
	for i, p := range payloads {
		out[i] = CustomDeduction{Name: p.Name, Type: p.Type, Amount: p.Amount}
	}
	return out
}

func mapConfigToResponse(c DeductionConfig) ConfigResponse {
	custom := make([]CustomDeductionPayload, len(c.CustomDeductions))
	for i, d := range c.CustomDeductions {
		custom[i] = CustomDeductionPayload{Name: d.Name, Type: d.Type, Amount: d.Amount}
	}
	return ConfigResponse{
		ID:         c.ID.String(),
		ConfigType: c.ConfigType,
		TargetID:   c.TargetID.String(),
		TargetName: c.TargetName,
		EPF: StatutoryRatesPayload{
			Enabled:     c.EPFEnabled,
			EmployeeBps: c.EPFEmployeeRateBps,
			EmployerBps: c.EPFEmployerRateBps,
		},
		SOCSO: StatutoryRatesPayload{
			Enabled:     c.SOCSOEnabled,
			EmployeeBps: c.SOCSOEmployeeRateBps,
			EmployerBps: c.SOCSOEmployerRateBps,
		},
		EIS: StatutoryRatesPayload{
			Enabled:     c.EISEnabled,
			EmployeeBps: c.EISEmployeeRateBps,
			EmployerBps: c.EISEmployerRateBps,
		},
		CustomDeductions: custom,
	}
}

func mapLoanToResponse(l Loan) LoanResponse {
	return LoanResponse{
		ID:               l.ID.String(),
		WorkerID:         l.WorkerID.String(),
		Name:             l.Name,
		Principal:        l.Principal,
		RemainingBalance: l.RemainingBalance,
		Installment:      l.Installment,
		Status:           l.Status,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}
