package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardAccess представляет связь между пользователем и доской
type BoardAccess struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:uq_board_accesses_board_user"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:uq_board_accesses_board_user"`
	Level     AccessLevel `gorm:"not null"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}
