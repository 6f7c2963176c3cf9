package timesheet

import (
	"context"
	"errors"

	"go-payroll/internal/client"
	"go-payroll/internal/project"
	"go-payroll/internal/worker"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsResolver walks the worker -> project -> client chain to find the
// timesheet settings in effect for a worker. Any broken link in the chain
// falls back to platform defaults rather than failing the request.
type SettingsResolver interface {
	Resolve(ctx context.Context, w worker.Worker) client.TimesheetSettings
}

type settingsResolver struct {
	projectRepo project.Repository
	clientRepo  client.Repository
	logger      *zap.Logger
}

func NewSettingsResolver(projectRepo project.Repository, clientRepo client.Repository, logger *zap.Logger) SettingsResolver {
	return &settingsResolver{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

func (r *settingsResolver) Resolve(ctx context.Context, w worker.Worker) client.TimesheetSettings {
	defaults := client.DefaultTimesheetSettings()

	if w.ProjectID == nil {
		return defaults
	}

	proj, err := r.projectRepo.FindByIDAndCompany(ctx, w.CompanyID.String(), w.ProjectID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("settings chain: project lookup failed, using defaults",
				zap.String("worker_id", w.ID.String()),
				zap.String("project_id", w.ProjectID.String()),
				zap.Error(err),
			)
		}
		return defaults
	}

	cl, err := r.clientRepo.FindByIDAndCompany(ctx, w.CompanyID.String(), proj.ClientID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("settings chain: client lookup failed, using defaults",
				zap.String("worker_id", w.ID.String()),
				zap.String("client_id", proj.ClientID.String()),
				zap.Error(err),
			)
		}
		return defaults
	}

	return cl.Settings.Normalize()
}
