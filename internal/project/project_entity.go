package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project links workers to a client; the client carries the timesheet
// settings that apply to everyone on the project.
type Project struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID  uuid.UUID      `gorm:"column:client_id;type:uuid;not null;index"`
	Name      string         `gorm:"column:name;type:varchar(120);not null"`
	Location  string         `gorm:"column:location;type:varchar(200)"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Client *ClientRef `gorm:"foreignKey:ClientID;references:ID"`
}

func (Project) TableName() string {
	return "projects"
}

type ClientRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (ClientRef) TableName() string {
	return "clients"
}
