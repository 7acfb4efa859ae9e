package model

import (
	"time"

	"github.com/google/uuid"
)

type Stage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description string
	Priority    int  `gorm:"not null;default:0"`
	Archived    bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}
