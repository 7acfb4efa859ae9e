package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskman/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create adds a new tag to the database
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetByID retrieves a tag by its ID
func (r *TagRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	result := r.db.WithContext(ctx).First(&tag, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tag, nil
}

// GetByBoardID retrieves all tags for a specific board, restricted by
// the supplied visibility scopes
func (r *TagRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID, scopes ...func(*gorm.DB) *gorm.DB) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Scopes(scopes...).
		Where("tags.board_id = ?", boardID).
		Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// GetByTaskID retrieves all tags associated with a specific task
func (r *TagRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Where("task_tags.task_id = ?", taskID).
		Find(&tags)

	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// Update updates an existing tag
func (r *TagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete removes a tag and its task associations
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM task_tags WHERE tag_id = ?", id,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, "id = ?", id).Error
	})
}
