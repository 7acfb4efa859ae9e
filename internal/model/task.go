package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	StageID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description string
	Body        string
	Priority    int  `gorm:"not null;default:0"`
	Archived    bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Stage Stage `gorm:"foreignKey:StageID"`
	Tags  []Tag `gorm:"many2many:task_tags"`
}
