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

func newResolverFixture() (*access.Resolver, *MockBoardGetter, *MockStageGetter, *MockTaskGetter, *MockTagGetter, *MockGrantGetter) {
	boards := new(MockBoardGetter)
	stages := new(MockStageGetter)
	tasks := new(MockTaskGetter)
	tags := new(MockTagGetter)
	grants := new(MockGrantGetter)
	return access.NewResolver(boards, stages, tasks, tags, grants), boards, stages, tasks, tags, grants
}

func TestResolveBoard_BoardGovernsItself(t *testing.T) {
	resolver, boards, _, _, _, _ := newResolverFixture()

	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID}, nil)

	got, err := resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.KindBoard, ID: boardID})

	assert.NoError(t, err)
	assert.Equal(t, boardID, got)
	boards.AssertExpectations(t)
}

func TestResolveBoard_StageCarriesBoard(t *testing.T) {
	resolver, _, stages, _, _, _ := newResolverFixture()

	boardID := uuid.New()
	stageID := uuid.New()
	stages.On("GetByID", mock.Anything, stageID).Return(&model.Stage{ID: stageID, BoardID: boardID}, nil)

	got, err := resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.KindStage, ID: stageID})

	assert.NoError(t, err)
	assert.Equal(t, boardID, got)
}

func TestResolveBoard_TaskGoesThroughItsStage(t *testing.T) {
	resolver, _, stages, tasks, _, _ := newResolverFixture()

	boardID := uuid.New()
	stageID := uuid.New()
	taskID := uuid.New()
	tasks.On("GetByID", mock.Anything, taskID).Return(&model.Task{ID: taskID, StageID: stageID}, nil)
	stages.On("GetByID", mock.Anything, stageID).Return(&model.Stage{ID: stageID, BoardID: boardID}, nil)

	got, err := resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.KindTask, ID: taskID})

	assert.NoError(t, err)
	assert.Equal(t, boardID, got)
	tasks.AssertExpectations(t)
	stages.AssertExpectations(t)
}

func TestResolveBoard_TagAndGrantCarryBoard(t *testing.T) {
	resolver, _, _, _, tags, grants := newResolverFixture()

	boardID := uuid.New()
	tagID := uuid.New()
	grantID := uuid.New()
	tags.On("GetByID", mock.Anything, tagID).Return(&model.Tag{ID: tagID, BoardID: boardID}, nil)
	grants.On("GetByID", mock.Anything, grantID).Return(&model.BoardAccess{ID: grantID, BoardID: boardID}, nil)

	got, err := resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.KindTag, ID: tagID})
	assert.NoError(t, err)
	assert.Equal(t, boardID, got)

	got, err = resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.KindBoardAccess, ID: grantID})
	assert.NoError(t, err)
	assert.Equal(t, boardID, got)
}

func TestResolveBoard_MissingResource(t *testing.T) {
	resolver, boards, _, _, _, _ := newResolverFixture()

	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	_, err := resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.KindBoard, ID: boardID})

	assert.ErrorIs(t, err, access.ErrNotResolved)
}

func TestResolveBoard_TaskWithMissingStage(t *testing.T) {
	// Осиротевшая задача не разрешается в доску
	resolver, _, stages, tasks, _, _ := newResolverFixture()

	stageID := uuid.New()
	taskID := uuid.New()
	tasks.On("GetByID", mock.Anything, taskID).Return(&model.Task{ID: taskID, StageID: stageID}, nil)
	stages.On("GetByID", mock.Anything, stageID).Return(nil, nil)

	_, err := resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.KindTask, ID: taskID})

	assert.ErrorIs(t, err, access.ErrNotResolved)
}

func TestResolveBoard_UnknownKind(t *testing.T) {
	resolver, _, _, _, _, _ := newResolverFixture()

	_, err := resolver.ResolveBoard(context.Background(), access.Ref{Kind: access.Kind("comment"), ID: uuid.New()})

	assert.ErrorIs(t, err, access.ErrNotResolved)
}
