package access_test

import (
	"context"
	"testing"

	"taskman/internal/access"
	"taskman/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEvaluate_NoGrantPrivateBoard(t *testing.T) {
	boards := new(MockBoardGetter)
	grants := new(MockGrantGetter)
	evaluator := access.NewEvaluator(boards, grants)

	userID := uuid.New()
	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, Public: false}, nil)
	grants.On("GetByUserAndBoard", mock.Anything, userID, boardID).Return(nil, nil)

	level, err := evaluator.Evaluate(context.Background(), userID, boardID)

	assert.NoError(t, err)
	assert.Equal(t, model.AccessNone, level)
}

func TestEvaluate_NoGrantPublicBoard(t *testing.T) {
	// Публичная доска дает аутентифицированному пользователю минимум
	// read-only даже без записи о доступе
	boards := new(MockBoardGetter)
	grants := new(MockGrantGetter)
	evaluator := access.NewEvaluator(boards, grants)

	userID := uuid.New()
	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, Public: true}, nil)
	grants.On("GetByUserAndBoard", mock.Anything, userID, boardID).Return(nil, nil)

	level, err := evaluator.Evaluate(context.Background(), userID, boardID)

	assert.NoError(t, err)
	assert.Equal(t, model.AccessReadOnly, level)
}

func TestEvaluate_StoredGrantBeatsPublicFloor(t *testing.T) {
	boards := new(MockBoardGetter)
	grants := new(MockGrantGetter)
	evaluator := access.NewEvaluator(boards, grants)

	userID := uuid.New()
	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, Public: true}, nil)
	grants.On("GetByUserAndBoard", mock.Anything, userID, boardID).
		Return(&model.BoardAccess{BoardID: boardID, UserID: userID, Level: model.AccessAdmin}, nil)

	level, err := evaluator.Evaluate(context.Background(), userID, boardID)

	assert.NoError(t, err)
	assert.Equal(t, model.AccessAdmin, level)
}

func TestEvaluate_MissingBoard(t *testing.T) {
	boards := new(MockBoardGetter)
	grants := new(MockGrantGetter)
	evaluator := access.NewEvaluator(boards, grants)

	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	_, err := evaluator.Evaluate(context.Background(), uuid.New(), boardID)

	assert.ErrorIs(t, err, access.ErrNotResolved)
}

func TestStored_IgnoresPublicCoercion(t *testing.T) {
	// access_level в представлении доски показывает хранимый уровень:
	// на публичной доске без записи это none
	boards := new(MockBoardGetter)
	grants := new(MockGrantGetter)
	evaluator := access.NewEvaluator(boards, grants)

	userID := uuid.New()
	boardID := uuid.New()
	grants.On("GetByUserAndBoard", mock.Anything, userID, boardID).Return(nil, nil)

	level, err := evaluator.Stored(context.Background(), userID, boardID)

	assert.NoError(t, err)
	assert.Equal(t, model.AccessNone, level)
	boards.AssertNotCalled(t, "GetByID")
}
