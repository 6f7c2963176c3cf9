package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	clientAllKeyPrefix = "clients:all:"
	clientCacheTTL     = 5 * time.Minute
)

func getClientAllKey(companyID string) string {
	return clientAllKeyPrefix + companyID
}

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ClientResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ClientResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
	rdb  *redis.Client
	sf   *singleflight.Group
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateClientRequest,
) (ClientResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c := &Client{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Settings:     settingsFromPayload(req.Settings),
	}

	if err := qtx.Create(ctx, c); err != nil {
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidateCache(ctx, companyID)
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ClientResponse, error) {
	cacheKey := getClientAllKey(companyID)

	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []ClientResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	// singleflight collapses concurrent cache misses into one DB hit.
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		clients, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		res := make([]ClientResponse, len(clients))
		for i, c := range clients {
			res[i] = mapToResponse(c)
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(res); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, clientCacheTTL).Err(); err != nil {
					zap.L().Warn("cache clients failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return res, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ClientResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ClientResponse, error) {
	c, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ClientResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateClientRequest,
) (ClientResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ClientResponse{}, err
	}

	c.Name = req.Name
	c.ContactEmail = req.ContactEmail
	if req.Settings != nil {
		c.Settings = settingsFromPayload(req.Settings)
	}

	if err := qtx.Update(ctx, c); err != nil {
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidateCache(ctx, companyID)
	return mapToResponse(*c), nil
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

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCache(ctx, companyID)
	return nil
}

func (s *service) invalidateCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := getClientAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		zap.L().Warn("invalidate client cache failed", zap.String("key", cacheKey), zap.Error(err))
	}
}

func settingsFromPayload(p *TimesheetSettingsPayload) TimesheetSettings {
	if p == nil {
		return DefaultTimesheetSettings()
	}
	// allow_overtime left out of the payload means "keep the default",
	// not "disable overtime"
	allowOT := true
	if p.AllowOvertime != nil {
		allowOT = *p.AllowOvertime
	}
	return TimesheetSettings{
		MinuteIncrement:  p.MinuteIncrement,
		RoundingMethod:   p.RoundingMethod,
		MinHoursPerDay:   p.MinHoursPerDay,
		MaxHoursPerDay:   p.MaxHoursPerDay,
		AllowOvertime:    allowOT,
		MaxOTHoursPerDay: p.MaxOTHoursPerDay,
	}.Normalize()
}

func mapToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID.String(),
		CompanyID:    c.CompanyID.String(),
		Name:         c.Name,
		ContactEmail: c.ContactEmail,
		Settings:     c.Settings.Normalize(),
	}
}
