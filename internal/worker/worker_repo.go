package worker

import (
	"context"
	"database/sql"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=worker_repo.go -destination=mock/worker_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Worker) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Worker, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Worker, error)
	FindByUserAndCompany(ctx context.Context, companyID string, userID string) (*Worker, error)
	Update(ctx context.Context, w *Worker) error
	Delete(ctx context.Context, companyID string, id string) error
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

func (r *repository) Create(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Worker, error) {
	var workers []Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&w, "id = ?", id).Error
	return &w, err
}

func (r *repository) FindByUserAndCompany(ctx context.Context, companyID string, userID string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&w, "user_id = ?", userID).Error
	return &w, err
}

func (r *repository) Update(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Worker{}, "id = ?", id).Error
}
