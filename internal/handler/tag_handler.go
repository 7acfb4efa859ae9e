package handler

import (
	"net/http"
	"time"

	"taskman/internal/access"
	"taskman/internal/model"
	"taskman/internal/repository"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagRepo *repository.TagRepository
	gate    *access.Gate
	scoper  *access.Scoper
}

func NewTagHandler(tagRepo *repository.TagRepository, gate *access.Gate, scoper *access.Scoper) *TagHandler {
	return &TagHandler{
		tagRepo: tagRepo,
		gate:    gate,
		scoper:  scoper,
	}
}

type CreateTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"required"`
	Description string `json:"description"`
	BoardID     string `json:"board" binding:"omitempty,uuid"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

type TagResponse struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"board"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"modified_at"`
}

func toTagResponse(tag *model.Tag) TagResponse {
	return TagResponse{
		ID:          tag.ID.String(),
		BoardID:     tag.BoardID.String(),
		Name:        tag.Name,
		Color:       tag.Color,
		Description: tag.Description,
		CreatedAt:   tag.CreatedAt,
		UpdatedAt:   tag.UpdatedAt,
	}
}

// Create creates a tag under the board carried by the path.
func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.BoardID != "" && req.BoardID != boardID.String() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board in payload does not match the path"})
		return
	}

	if _, err := h.gate.AuthorizeCreate(c.Request.Context(), userID, access.KindTag, access.Ref{Kind: access.KindBoard, ID: boardID}); err != nil {
		respondAccessError(c, err)
		return
	}

	tag := &model.Tag{
		BoardID:     boardID,
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	}

	if err := h.tagRepo.Create(c.Request.Context(), tag); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, toTagResponse(tag))
}

// List returns the tags of a board the requester can see.
func (h *TagHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tags, err := h.tagRepo.GetByBoardID(c.Request.Context(), boardID, h.scoper.VisibleTags(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tags"})
		return
	}

	response := make([]TagResponse, len(tags))
	for i := range tags {
		response[i] = toTagResponse(&tags[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *TagHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTag, ID: tagID}, access.OpRetrieve); err != nil {
		respondAccessError(c, err)
		return
	}

	tag, err := h.tagRepo.GetByID(c.Request.Context(), tagID)
	if err != nil || tag == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	c.JSON(http.StatusOK, toTagResponse(tag))
}

func (h *TagHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTag, ID: tagID}, access.OpUpdate); err != nil {
		respondAccessError(c, err)
		return
	}

	tag, err := h.tagRepo.GetByID(c.Request.Context(), tagID)
	if err != nil || tag == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if req.Description != nil {
		tag.Description = *req.Description
	}

	if err := h.tagRepo.Update(c.Request.Context(), tag); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, toTagResponse(tag))
}

// Delete removes a tag and detaches it from every task.
func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTag, ID: tagID}, access.OpDelete); err != nil {
		respondAccessError(c, err)
		return
	}

	if err := h.tagRepo.Delete(c.Request.Context(), tagID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.Status(http.StatusNoContent)
}
