package access_test

import (
	"context"

	"taskman/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBoardGetter struct {
	mock.Mock
}

func (m *MockBoardGetter) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

type MockStageGetter struct {
	mock.Mock
}

func (m *MockStageGetter) GetByID(ctx context.Context, id uuid.UUID) (*model.Stage, error) {
	args := m.Called(ctx, id)
	stage := args.Get(0)
	if stage == nil {
		return nil, args.Error(1)
	}
	return stage.(*model.Stage), args.Error(1)
}

type MockTaskGetter struct {
	mock.Mock
}

func (m *MockTaskGetter) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

type MockTagGetter struct {
	mock.Mock
}

func (m *MockTagGetter) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	args := m.Called(ctx, id)
	tag := args.Get(0)
	if tag == nil {
		return nil, args.Error(1)
	}
	return tag.(*model.Tag), args.Error(1)
}

type MockGrantGetter struct {
	mock.Mock
}

func (m *MockGrantGetter) GetByID(ctx context.Context, id uuid.UUID) (*model.BoardAccess, error) {
	args := m.Called(ctx, id)
	grant := args.Get(0)
	if grant == nil {
		return nil, args.Error(1)
	}
	return grant.(*model.BoardAccess), args.Error(1)
}

func (m *MockGrantGetter) GetByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) (*model.BoardAccess, error) {
	args := m.Called(ctx, userID, boardID)
	grant := args.Get(0)
	if grant == nil {
		return nil, args.Error(1)
	}
	return grant.(*model.BoardAccess), args.Error(1)
}
