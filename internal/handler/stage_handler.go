package handler

import (
	"net/http"
	"time"

	"taskman/internal/access"
	"taskman/internal/model"
	"taskman/internal/repository"

	"github.com/gin-gonic/gin"
)

type StageHandler struct {
	stageRepo *repository.StageRepository
	gate      *access.Gate
	scoper    *access.Scoper
}

func NewStageHandler(stageRepo *repository.StageRepository, gate *access.Gate, scoper *access.Scoper) *StageHandler {
	return &StageHandler{
		stageRepo: stageRepo,
		gate:      gate,
		scoper:    scoper,
	}
}

// CreateStageRequest may repeat the board id carried by the path; when
// both are present they must agree.
type CreateStageRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	BoardID     string `json:"board" binding:"omitempty,uuid"`
}

type UpdateStageRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
	Archived    *bool   `json:"archived"`
}

type StageResponse struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"board"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"modified_at"`
}

func toStageResponse(stage *model.Stage) StageResponse {
	return StageResponse{
		ID:          stage.ID.String(),
		BoardID:     stage.BoardID.String(),
		Name:        stage.Name,
		Description: stage.Description,
		Priority:    stage.Priority,
		Archived:    stage.Archived,
		CreatedAt:   stage.CreatedAt,
		UpdatedAt:   stage.UpdatedAt,
	}
}

// Create creates a stage under the board carried by the path.
func (h *StageHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Path and payload disagreeing on the parent is a validation error,
	// raised before any access check.
	if req.BoardID != "" && req.BoardID != boardID.String() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board in payload does not match the path"})
		return
	}

	if _, err := h.gate.AuthorizeCreate(c.Request.Context(), userID, access.KindStage, access.Ref{Kind: access.KindBoard, ID: boardID}); err != nil {
		respondAccessError(c, err)
		return
	}

	stage := &model.Stage{
		BoardID:     boardID,
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
	}

	if err := h.stageRepo.Create(c.Request.Context(), stage); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stage"})
		return
	}

	c.JSON(http.StatusCreated, toStageResponse(stage))
}

// List returns the stages of a board the requester can see. An
// invisible board yields an empty collection, not an error.
func (h *StageHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	stages, err := h.stageRepo.GetByBoardID(c.Request.Context(), boardID, h.scoper.VisibleStages(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stages"})
		return
	}

	response := make([]StageResponse, len(stages))
	for i := range stages {
		response[i] = toStageResponse(&stages[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *StageHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindStage, ID: stageID}, access.OpRetrieve); err != nil {
		respondAccessError(c, err)
		return
	}

	stage, err := h.stageRepo.GetByID(c.Request.Context(), stageID)
	if err != nil || stage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stage"})
		return
	}

	c.JSON(http.StatusOK, toStageResponse(stage))
}

func (h *StageHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindStage, ID: stageID}, access.OpUpdate); err != nil {
		respondAccessError(c, err)
		return
	}

	stage, err := h.stageRepo.GetByID(c.Request.Context(), stageID)
	if err != nil || stage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stage"})
		return
	}

	if req.Name != nil {
		stage.Name = *req.Name
	}
	if req.Description != nil {
		stage.Description = *req.Description
	}
	if req.Priority != nil {
		stage.Priority = *req.Priority
	}
	if req.Archived != nil {
		stage.Archived = *req.Archived
	}

	if err := h.stageRepo.Update(c.Request.Context(), stage); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stage"})
		return
	}

	c.JSON(http.StatusOK, toStageResponse(stage))
}

// Delete removes a stage and the tasks under it.
func (h *StageHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindStage, ID: stageID}, access.OpDelete); err != nil {
		respondAccessError(c, err)
		return
	}

	if err := h.stageRepo.Delete(c.Request.Context(), stageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stage"})
		return
	}

	c.Status(http.StatusNoContent)
}
