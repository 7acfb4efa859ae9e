package handler

import (
	"errors"
	"net/http"
	"time"

	"taskman/internal/access"
	"taskman/internal/model"
	"taskman/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardAccessHandler struct {
	accessRepo *repository.BoardAccessRepository
	userRepo   repository.UserRepositoryInterface
	gate       *access.Gate
}

func NewBoardAccessHandler(accessRepo *repository.BoardAccessRepository, userRepo repository.UserRepositoryInterface, gate *access.Gate) *BoardAccessHandler {
	return &BoardAccessHandler{
		accessRepo: accessRepo,
		userRepo:   userRepo,
		gate:       gate,
	}
}

// GrantAccessRequest invites a user onto a board. The level must be a
// declared rank above none.
type GrantAccessRequest struct {
	UserID string            `json:"user_id" binding:"required,uuid"`
	Level  model.AccessLevel `json:"level" binding:"required,min=1,max=4"`
}

type UpdateAccessRequest struct {
	Level model.AccessLevel `json:"level" binding:"required,min=1,max=4"`
}

type BoardAccessResponse struct {
	ID        string            `json:"id"`
	BoardID   string            `json:"board"`
	UserID    string            `json:"user_id"`
	Level     model.AccessLevel `json:"level"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"modified_at"`

	User *UserResponse `json:"user,omitempty"`
}

func toBoardAccessResponse(grant *model.BoardAccess) BoardAccessResponse {
	resp := BoardAccessResponse{
		ID:        grant.ID.String(),
		BoardID:   grant.BoardID.String(),
		UserID:    grant.UserID.String(),
		Level:     grant.Level,
		CreatedAt: grant.CreatedAt,
		UpdatedAt: grant.UpdatedAt,
	}
	if grant.User.ID != uuid.Nil {
		user := toUserResponse(&grant.User)
		resp.User = &user
	}
	return resp
}

// Grant invites a user onto a board. Only the board owner passes the
// gate for this; a duplicate (user, board) pair is a conflict.
func (h *BoardAccessHandler) Grant(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if _, err := h.gate.AuthorizeCreate(c.Request.Context(), userID, access.KindBoardAccess, access.Ref{Kind: access.KindBoard, ID: boardID}); err != nil {
		respondAccessError(c, err)
		return
	}

	target, err := h.userRepo.GetByID(c.Request.Context(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	grant := &model.BoardAccess{
		BoardID: boardID,
		UserID:  targetID,
		Level:   req.Level,
	}

	if err := h.accessRepo.Grant(c.Request.Context(), grant); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccess) {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Access already granted",
				"user_id":  targetID.String(),
				"board_id": boardID.String(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant access"})
		return
	}

	c.JSON(http.StatusCreated, toBoardAccessResponse(grant))
}

// List returns the access grants of a board.
func (h *BoardAccessHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.AuthorizeBoard(c.Request.Context(), userID, access.KindBoardAccess, boardID, access.OpList); err != nil {
		respondAccessError(c, err)
		return
	}

	grants, err := h.accessRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accesses"})
		return
	}

	response := make([]BoardAccessResponse, len(grants))
	for i := range grants {
		response[i] = toBoardAccessResponse(&grants[i])
	}

	c.JSON(http.StatusOK, response)
}

// Update changes the level of an existing grant.
func (h *BoardAccessHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	grantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindBoardAccess, ID: grantID}, access.OpUpdate); err != nil {
		respondAccessError(c, err)
		return
	}

	grant, err := h.accessRepo.GetByID(c.Request.Context(), grantID)
	if err != nil || grant == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve access"})
		return
	}

	grant.Level = req.Level
	if err := h.accessRepo.Update(c.Request.Context(), grant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update access"})
		return
	}

	c.JSON(http.StatusOK, toBoardAccessResponse(grant))
}

// Delete revokes a grant.
func (h *BoardAccessHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	grantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindBoardAccess, ID: grantID}, access.OpDelete); err != nil {
		respondAccessError(c, err)
		return
	}

	if err := h.accessRepo.Delete(c.Request.Context(), grantID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke access"})
		return
	}

	c.Status(http.StatusNoContent)
}
