package handler

import (
	"net/http"
	"time"

	"taskman/internal/access"
	"taskman/internal/model"
	"taskman/internal/repository"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardRepo *repository.BoardRepository
	gate      *access.Gate
	evaluator *access.Evaluator
	scoper    *access.Scoper
}

func NewBoardHandler(boardRepo *repository.BoardRepository, gate *access.Gate, evaluator *access.Evaluator, scoper *access.Scoper) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		gate:      gate,
		evaluator: evaluator,
		scoper:    scoper,
	}
}

type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type UpdateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Archived    *bool   `json:"archived"`
	Public      *bool   `json:"public"`
}

// BoardResponse carries the per-request derived access_level next to
// the stored fields.
type BoardResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Archived    bool              `json:"archived"`
	Public      bool              `json:"public"`
	AccessLevel model.AccessLevel `json:"access_level"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"modified_at"`
}

func toBoardResponse(board *model.Board, level model.AccessLevel) BoardResponse {
	return BoardResponse{
		ID:          board.ID.String(),
		Name:        board.Name,
		Description: board.Description,
		Archived:    board.Archived,
		Public:      board.Public,
		AccessLevel: level,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

// Create creates a board and grants its creator owner-level access in
// the same transaction.
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := &model.Board{
		Name:        req.Name,
		Description: req.Description,
		Public:      req.Public,
	}

	if err := h.boardRepo.CreateWithOwner(c.Request.Context(), board, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board, model.AccessOwner))
}

// List returns the boards visible to the requester: boards the user
// holds a grant on plus public ones.
func (h *BoardHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.List(c.Request.Context(), h.scoper.VisibleBoards(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i, board := range boards {
		level, err := h.evaluator.Stored(c.Request.Context(), userID, board.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
			return
		}
		response[i] = toBoardResponse(&board, level)
	}

	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindBoard, ID: boardID}, access.OpRetrieve); err != nil {
		respondAccessError(c, err)
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil || board == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	level, err := h.evaluator.Stored(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board, level))
}

func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindBoard, ID: boardID}, access.OpUpdate); err != nil {
		respondAccessError(c, err)
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil || board == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.Archived != nil {
		board.Archived = *req.Archived
	}
	if req.Public != nil {
		board.Public = *req.Public
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	level, err := h.evaluator.Stored(c.Request.Context(), userID, board.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board, level))
}

// Delete removes the board together with its stages, tasks, tags and
// access grants.
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindBoard, ID: boardID}, access.OpDelete); err != nil {
		respondAccessError(c, err)
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.Status(http.StatusNoContent)
}
