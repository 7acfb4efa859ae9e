package repository

import (
	"context"
	"errors"

	"taskman/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithOwner creates the board and the owner-level access grant for
// its creator in one transaction, so a board never exists without an owner.
func (r *BoardRepository) CreateWithOwner(ctx context.Context, board *model.Board, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		access := &model.BoardAccess{
			BoardID: board.ID,
			UserID:  ownerID,
			Level:   model.AccessOwner,
		}
		return tx.Create(access).Error
	})
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil, nil to indicate that the board was not found
		}
		return nil, err
	}
	return &board, nil
}

// List returns boards restricted by the supplied visibility scopes
func (r *BoardRepository) List(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Scopes(scopes...).Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// Delete removes the board and everything reachable from it (tasks, the
// task/tag join rows, stages, tags, access grants) in one transaction.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM task_tags WHERE task_id IN (
				SELECT tasks.id FROM tasks
				JOIN stages ON tasks.stage_id = stages.id
				WHERE stages.board_id = ?
			)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`DELETE FROM tasks WHERE stage_id IN (
				SELECT id FROM stages WHERE board_id = ?
			)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Stage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.BoardAccess{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Board{}, "id = ?", id).Error
	})
}
