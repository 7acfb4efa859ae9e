package access

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scoper builds the visibility filter for collection queries: a row is
// visible when the requesting user holds a grant on its governing board
// or that board is public. Membership matches what the gate's
// safe-operation check would decide per item, without the per-item cost.
type Scoper struct{}

func NewScoper() *Scoper {
	return &Scoper{}
}

const boardVisible = `boards.public = true OR EXISTS (
	SELECT 1 FROM board_accesses
	WHERE board_accesses.board_id = boards.id AND board_accesses.user_id = ?
)`

// Visible returns the filter for the given resource kind.
func (s *Scoper) Visible(kind Kind, userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	switch kind {
	case KindStage:
		return s.VisibleStages(userID)
	case KindTask:
		return s.VisibleTasks(userID)
	case KindTag:
		return s.VisibleTags(userID)
	}
	return s.VisibleBoards(userID)
}

func (s *Scoper) VisibleBoards(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(boardVisible, userID)
	}
}

func (s *Scoper) VisibleStages(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN boards ON boards.id = stages.board_id").
			Where(boardVisible, userID)
	}
}

// VisibleTasks walks the task -> stage -> board chain.
func (s *Scoper) VisibleTasks(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN stages ON stages.id = tasks.stage_id").
			Joins("JOIN boards ON boards.id = stages.board_id").
			Where(boardVisible, userID)
	}
}

func (s *Scoper) VisibleTags(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN boards ON boards.id = tags.board_id").
			Where(boardVisible, userID)
	}
}
