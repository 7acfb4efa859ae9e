package access

import (
	"context"

	"taskman/internal/model"

	"github.com/google/uuid"
)

// Policy holds the two thresholds protecting one resource kind.
type Policy struct {
	Safe   model.AccessLevel
	Unsafe model.AccessLevel
}

// Threshold returns the level required for the given operation.
func (p Policy) Threshold(op Operation) model.AccessLevel {
	if op.Safe() {
		return p.Safe
	}
	return p.Unsafe
}

// DefaultPolicies is the policy table wired at startup: any member can
// read a board but only admins mutate its metadata or delete it, grants
// are mutable only by the owner, and stages, tasks and tags share one
// member-level write tier.
func DefaultPolicies() map[Kind]Policy {
	return map[Kind]Policy{
		KindBoard:       {Safe: model.AccessReadOnly, Unsafe: model.AccessAdmin},
		KindBoardAccess: {Safe: model.AccessReadOnly, Unsafe: model.AccessOwner},
		KindStage:       {Safe: model.AccessReadOnly, Unsafe: model.AccessMember},
		KindTask:        {Safe: model.AccessReadOnly, Unsafe: model.AccessMember},
		KindTag:         {Safe: model.AccessReadOnly, Unsafe: model.AccessMember},
	}
}

// Decision is a successful authorization. It carries the resolved board
// and the effective level so callers can reuse them instead of hitting
// the evaluator again within the same request.
type Decision struct {
	BoardID uuid.UUID
	Level   model.AccessLevel
}

// Gate is the single authority deciding whether an operation on a
// resource is allowed for a user.
type Gate struct {
	resolver  *Resolver
	evaluator *Evaluator
	policies  map[Kind]Policy
}

func NewGate(resolver *Resolver, evaluator *Evaluator, policies map[Kind]Policy) *Gate {
	return &Gate{
		resolver:  resolver,
		evaluator: evaluator,
		policies:  policies,
	}
}

// Authorize resolves the governing board of the referenced resource,
// evaluates the requester's effective level on it and checks the level
// against the kind's threshold for the operation.
func (g *Gate) Authorize(ctx context.Context, userID uuid.UUID, ref Ref, op Operation) (Decision, error) {
	boardID, err := g.resolver.ResolveBoard(ctx, ref)
	if err != nil {
		return Decision{}, err
	}
	return g.AuthorizeBoard(ctx, userID, ref.Kind, boardID, op)
}

// AuthorizeCreate gates creation of a resource of the given kind under
// the parent carried by the request path. The governing board comes
// from the parent; a missing parent reads as a resolution failure.
func (g *Gate) AuthorizeCreate(ctx context.Context, userID uuid.UUID, kind Kind, parent Ref) (Decision, error) {
	boardID, err := g.resolver.ResolveBoard(ctx, parent)
	if err != nil {
		return Decision{}, err
	}
	return g.AuthorizeBoard(ctx, userID, kind, boardID, OpCreate)
}

// AuthorizeBoard gates an operation whose governing board is already
// known, e.g. creation under a parent resolved from the request path.
func (g *Gate) AuthorizeBoard(ctx context.Context, userID uuid.UUID, kind Kind, boardID uuid.UUID, op Operation) (Decision, error) {
	level, err := g.evaluator.Evaluate(ctx, userID, boardID)
	if err != nil {
		return Decision{}, err
	}

	policy, ok := g.policies[kind]
	if !ok {
		return Decision{}, ErrDenied
	}
	if !level.Meets(policy.Threshold(op)) {
		return Decision{}, ErrDenied
	}

	return Decision{BoardID: boardID, Level: level}, nil
}
