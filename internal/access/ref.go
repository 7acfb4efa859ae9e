package access

import "github.com/google/uuid"

// Kind names a board-governed resource type.
type Kind string

const (
	KindBoard       Kind = "board"
	KindBoardAccess Kind = "board_access"
	KindStage       Kind = "stage"
	KindTask        Kind = "task"
	KindTag         Kind = "tag"
)

// Ref identifies one resource instance.
type Ref struct {
	Kind Kind
	ID   uuid.UUID
}

// Operation classifies what a request wants to do with a resource.
type Operation int

const (
	OpRetrieve Operation = iota
	OpList
	OpCreate
	OpUpdate
	OpDelete
)

// Safe reports whether the operation only reads state.
func (op Operation) Safe() bool {
	return op == OpRetrieve || op == OpList
}
