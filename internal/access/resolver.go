package access

import (
	"context"

	"taskman/internal/model"

	"github.com/google/uuid"
)

// Lookup interfaces implemented by the repositories. Missing rows are
// reported as (nil, nil), matching the repository convention.
type BoardGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
}

type StageGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Stage, error)
}

type TaskGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
}

type TagGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
}

type GrantGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.BoardAccess, error)
	GetByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) (*model.BoardAccess, error)
}

// Resolver maps any resource reference to its governing board. It is
// the single place that knows the ownership chain; the gate and the
// scoper both rely on it instead of repeating the relation walk.
type Resolver struct {
	boards BoardGetter
	stages StageGetter
	tasks  TaskGetter
	tags   TagGetter
	grants GrantGetter
}

func NewResolver(boards BoardGetter, stages StageGetter, tasks TaskGetter, tags TagGetter, grants GrantGetter) *Resolver {
	return &Resolver{
		boards: boards,
		stages: stages,
		tasks:  tasks,
		tags:   tags,
		grants: grants,
	}
}

// ResolveBoard returns the id of the board governing the referenced
// resource. Boards govern themselves; stages, tags and grants carry the
// board directly; tasks go through their stage.
func (r *Resolver) ResolveBoard(ctx context.Context, ref Ref) (uuid.UUID, error) {
	switch ref.Kind {
	case KindBoard:
		board, err := r.boards.GetByID(ctx, ref.ID)
		if err != nil {
			return uuid.Nil, err
		}
		if board == nil {
			return uuid.Nil, ErrNotResolved
		}
		return board.ID, nil

	case KindBoardAccess:
		grant, err := r.grants.GetByID(ctx, ref.ID)
		if err != nil {
			return uuid.Nil, err
		}
		if grant == nil {
			return uuid.Nil, ErrNotResolved
		}
		return grant.BoardID, nil

	case KindStage:
		stage, err := r.stages.GetByID(ctx, ref.ID)
		if err != nil {
			return uuid.Nil, err
		}
		if stage == nil {
			return uuid.Nil, ErrNotResolved
		}
		return stage.BoardID, nil

	case KindTag:
		tag, err := r.tags.GetByID(ctx, ref.ID)
		if err != nil {
			return uuid.Nil, err
		}
		if tag == nil {
			return uuid.Nil, ErrNotResolved
		}
		return tag.BoardID, nil

	case KindTask:
		task, err := r.tasks.GetByID(ctx, ref.ID)
		if err != nil {
			return uuid.Nil, err
		}
		if task == nil {
			return uuid.Nil, ErrNotResolved
		}
		return r.ResolveBoard(ctx, Ref{Kind: KindStage, ID: task.StageID})
	}

	return uuid.Nil, ErrNotResolved
}
