package repository

import (
	"context"
	"errors"

	"taskman/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StageRepository struct {
	db *gorm.DB
}

func NewStageRepository(db *gorm.DB) *StageRepository {
	return &StageRepository{db: db}
}

func (r *StageRepository) Create(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *StageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Stage, error) {
	var stage model.Stage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&stage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stage, nil
}

// GetByBoardID returns the stages of a board ordered by priority,
// restricted by the supplied visibility scopes
func (r *StageRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID, scopes ...func(*gorm.DB) *gorm.DB) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Scopes(scopes...).
		Where("stages.board_id = ?", boardID).
		Order("stages.priority").
		Find(&stages).Error
	return stages, err
}

func (r *StageRepository) Update(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *StageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM task_tags WHERE task_id IN (SELECT id FROM tasks WHERE stage_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("stage_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Stage{}, "id = ?", id).Error
	})
}
