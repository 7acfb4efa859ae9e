package repository

import (
	"context"
	"errors"

	"taskman/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardAccessRepository struct {
	db *gorm.DB
}

func NewBoardAccessRepository(db *gorm.DB) *BoardAccessRepository {
	return &BoardAccessRepository{db: db}
}

// Grant creates an access row for a (user, board) pair.
// Возвращает ErrDuplicateAccess, если запись для этой пары уже существует.
func (r *BoardAccessRepository) Grant(ctx context.Context, access *model.BoardAccess) error {
	// Используем транзакцию для предотвращения гонок
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.BoardAccess
		err := tx.Where("board_id = ? AND user_id = ?", access.BoardID, access.UserID).
			First(&existing).Error

		if err == nil {
			return ErrDuplicateAccess
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(access).Error
	})
}

func (r *BoardAccessRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BoardAccess, error) {
	var access model.BoardAccess
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&access).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &access, nil
}

// GetByUserAndBoard returns the grant for a (user, board) pair, or nil
// when the user holds no grant on the board
func (r *BoardAccessRepository) GetByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) (*model.BoardAccess, error) {
	var access model.BoardAccess
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&access).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &access, nil
}

// GetByBoardID returns the access grants of a board, with the granted
// users preloaded for serialization
func (r *BoardAccessRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.BoardAccess, error) {
	var accesses []model.BoardAccess
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ?", boardID).
		Find(&accesses).Error
	return accesses, err
}

func (r *BoardAccessRepository) Update(ctx context.Context, access *model.BoardAccess) error {
	return r.db.WithContext(ctx).Save(access).Error
}

func (r *BoardAccessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BoardAccess{}, "id = ?", id).Error
}
