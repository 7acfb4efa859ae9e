package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskman/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByStageID retrieves the tasks of a stage with their tags preloaded,
// ordered by priority, restricted by the supplied visibility scopes
func (r *TaskRepository) GetByStageID(ctx context.Context, stageID uuid.UUID, scopes ...func(*gorm.DB) *gorm.DB) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Scopes(scopes...).
		Preload("Tags").
		Where("tasks.stage_id = ?", stageID).
		Order("tasks.priority").
		Find(&tasks)

	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes a task and its tag associations
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM task_tags WHERE task_id = ?", id,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, "id = ?", id).Error
	})
}

// AttachTag adds a tag to a specific task
func (r *TaskRepository) AttachTag(ctx context.Context, taskID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		taskID, tagID,
	).Error
}

// DetachTag removes a tag from a specific task
func (r *TaskRepository) DetachTag(ctx context.Context, taskID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?",
		taskID, tagID,
	).Error
}
