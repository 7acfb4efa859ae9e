package handler

import (
	"net/http"
	"time"

	"taskman/internal/access"
	"taskman/internal/model"
	"taskman/internal/repository"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskRepo *repository.TaskRepository
	tagRepo  *repository.TagRepository
	gate     *access.Gate
	resolver *access.Resolver
	scoper   *access.Scoper
}

func NewTaskHandler(taskRepo *repository.TaskRepository, tagRepo *repository.TagRepository, gate *access.Gate, resolver *access.Resolver, scoper *access.Scoper) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		tagRepo:  tagRepo,
		gate:     gate,
		resolver: resolver,
		scoper:   scoper,
	}
}

type CreateTaskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Body        string `json:"body"`
	Priority    int    `json:"priority"`
	StageID     string `json:"stage" binding:"omitempty,uuid"`
}

type UpdateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
	Priority    *int    `json:"priority"`
	Archived    *bool   `json:"archived"`
}

type TaskResponse struct {
	ID          string        `json:"id"`
	StageID     string        `json:"stage"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Body        string        `json:"body"`
	Priority    int           `json:"priority"`
	Archived    bool          `json:"archived"`
	Tags        []TagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"modified_at"`
}

func toTaskResponse(task *model.Task) TaskResponse {
	tags := make([]TagResponse, len(task.Tags))
	for i := range task.Tags {
		tags[i] = toTagResponse(&task.Tags[i])
	}
	return TaskResponse{
		ID:          task.ID.String(),
		StageID:     task.StageID.String(),
		Name:        task.Name,
		Description: task.Description,
		Body:        task.Body,
		Priority:    task.Priority,
		Archived:    task.Archived,
		Tags:        tags,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// Create creates a task under the stage carried by the path. The
// governing board is the stage's board.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.StageID != "" && req.StageID != stageID.String() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stage in payload does not match the path"})
		return
	}

	if _, err := h.gate.AuthorizeCreate(c.Request.Context(), userID, access.KindTask, access.Ref{Kind: access.KindStage, ID: stageID}); err != nil {
		respondAccessError(c, err)
		return
	}

	task := &model.Task{
		StageID:     stageID,
		Name:        req.Name,
		Description: req.Description,
		Body:        req.Body,
		Priority:    req.Priority,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// List returns the tasks of a stage the requester can see, with their
// tags. An invisible stage yields an empty collection, not an error.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.taskRepo.GetByStageID(c.Request.Context(), stageID, h.scoper.VisibleTasks(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTask, ID: taskID}, access.OpRetrieve); err != nil {
		respondAccessError(c, err)
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil || task == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	tags, err := h.tagRepo.GetByTaskID(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	task.Tags = tags

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTask, ID: taskID}, access.OpUpdate); err != nil {
		respondAccessError(c, err)
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil || task == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Body != nil {
		task.Body = *req.Body
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Archived != nil {
		task.Archived = *req.Archived
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTask, ID: taskID}, access.OpDelete); err != nil {
		respondAccessError(c, err)
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddTag attaches a tag to a task. The tag must belong to the task's
// governing board.
func (h *TaskHandler) AddTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tag_id")
	if !ok {
		return
	}

	decision, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTask, ID: taskID}, access.OpUpdate)
	if err != nil {
		respondAccessError(c, err)
		return
	}

	tagBoard, err := h.resolver.ResolveBoard(c.Request.Context(), access.Ref{Kind: access.KindTag, ID: tagID})
	if err != nil {
		respondAccessError(c, err)
		return
	}
	if tagBoard != decision.BoardID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tag belongs to a different board"})
		return
	}

	if err := h.taskRepo.AttachTag(c.Request.Context(), taskID, tagID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag attached"})
}

// RemoveTag detaches a tag from a task.
func (h *TaskHandler) RemoveTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tag_id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTask, ID: taskID}, access.OpUpdate); err != nil {
		respondAccessError(c, err)
		return
	}

	if err := h.taskRepo.DetachTag(c.Request.Context(), taskID, tagID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach tag"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTags returns the tags attached to a task.
func (h *TaskHandler) GetTags(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), userID, access.Ref{Kind: access.KindTask, ID: taskID}, access.OpRetrieve); err != nil {
		respondAccessError(c, err)
		return
	}

	tags, err := h.tagRepo.GetByTaskID(c.Request.Context(), taskID)
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
