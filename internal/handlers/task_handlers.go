package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

type TaskHandler struct {
	tasks *repository.TaskRepository
}

func NewTaskHandler(tasks *repository.TaskRepository) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	task := &models.Task{
		Title:      req.Title,
		Status:     models.TaskStatusOpen,
		Priority:   models.TaskPriorityMedium,
		AssigneeID: req.AssigneeID,
		DueDate:    req.DueDate,
		Details:    req.Details,
		CreatedBy:  stringPtr(userID.(string)),
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if err := h.tasks.CreateTask(tenantID.(string), task); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to create task"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.TaskResponse{
		Success: true,
		Data:    task,
		Message: stringPtr("Task created successfully"),
	})
}

// GetTask retrieves a task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid task ID"},
		})
		return
	}

	task, err := h.tasks.GetTaskByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Task not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.TaskResponse{Success: true, Data: task})
}

// ListTasks lists tasks with status/assignee filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var status *models.TaskStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.TaskStatus(statusStr)
		switch s {
		case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusDone:
			status = &s
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_STATUS", Message: "Unknown task status"},
			})
			return
		}
	}
	var assigneeID *string
	if assignee := c.Query("assignee"); assignee != "" {
		assigneeID = &assignee
	}

	page, limit := parsePagination(c)
	tasks, total, err := h.tasks.ListTasks(tenantID.(string), status, assigneeID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve tasks"},
		})
		return
	}

	response := models.TaskListResponse{Success: true, Data: tasks}
	response.Pagination = paginationMeta(page, limit, total)
	c.JSON(http.StatusOK, response)
}

// UpdateTask updates task fields other than status
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid task ID"},
		})
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.AssigneeID != nil {
		updates["assignee_id"] = *req.AssigneeID
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Details != nil {
		updates["details"] = req.Details
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "No fields to update"},
		})
		return
	}

	if err := h.tasks.UpdateTask(tenantID.(string), id, updates); err != nil {
		status, resp := notFoundOrInternal(err, "Task")
		c.JSON(status, resp)
		return
	}

	task, err := h.tasks.GetTaskByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Task not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.TaskResponse{
		Success: true,
		Data:    task,
		Message: stringPtr("Task updated successfully"),
	})
}

// UpdateTaskStatus moves a task through its lifecycle
// PATCH /api/v1/tasks/:id/status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid task ID"},
		})
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	switch req.Status {
	case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusDone:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_STATUS", Message: "Unknown task status"},
		})
		return
	}

	if err := h.tasks.UpdateTaskStatus(tenantID.(string), id, req.Status); err != nil {
		status, resp := notFoundOrInternal(err, "Task")
		c.JSON(status, resp)
		return
	}

	task, err := h.tasks.GetTaskByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Task not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.TaskResponse{
		Success: true,
		Data:    task,
		Message: stringPtr("Task status updated successfully"),
	})
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid task ID"},
		})
		return
	}

	if err := h.tasks.DeleteTask(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Task")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Task deleted successfully"),
	})
}
