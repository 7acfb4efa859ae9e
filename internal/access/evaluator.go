package access

import (
	"context"

	"taskman/internal/model"

	"github.com/google/uuid"
)

// Evaluator computes a user's effective access level on a board: the
// stored grant level (none when no grant exists) coerced by the board's
// public flag. It only reads stored state and never invents access.
type Evaluator struct {
	boards BoardGetter
	grants GrantGetter
}

func NewEvaluator(boards BoardGetter, grants GrantGetter) *Evaluator {
	return &Evaluator{boards: boards, grants: grants}
}

// Stored returns the grant level on record for the pair, without board
// existence checks or the public-board coercion. Board representations
// expose this value as access_level: on a public board a user without a
// grant can read the board yet still sees none here.
func (e *Evaluator) Stored(ctx context.Context, userID, boardID uuid.UUID) (model.AccessLevel, error) {
	grant, err := e.grants.GetByUserAndBoard(ctx, userID, boardID)
	if err != nil || grant == nil {
		return model.AccessNone, err
	}
	return grant.Level, nil
}

func (e *Evaluator) Evaluate(ctx context.Context, userID, boardID uuid.UUID) (model.AccessLevel, error) {
	board, err := e.boards.GetByID(ctx, boardID)
	if err != nil {
		return model.AccessNone, err
	}
	if board == nil {
		return model.AccessNone, ErrNotResolved
	}

	level := model.AccessNone
	grant, err := e.grants.GetByUserAndBoard(ctx, userID, boardID)
	if err != nil {
		return model.AccessNone, err
	}
	if grant != nil {
		level = grant.Level
	}

	return level.Coerce(board.Public), nil
}
