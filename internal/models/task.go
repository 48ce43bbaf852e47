package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskStatus represents the state of an internal task
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskPriority represents task urgency
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Task represents an internal back-office todo item
type Task struct {
	ID       uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string       `json:"tenantId" gorm:"type:varchar(255);not null;index;index:idx_tasks_tenant_status"`
	Title    string       `json:"title" gorm:"type:varchar(255);not null"`
	Status   TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'OPEN';index:idx_tasks_tenant_status"`
	Priority TaskPriority `json:"priority" gorm:"type:varchar(10);not null;default:'MEDIUM'"`

	AssigneeID *string        `json:"assigneeId,omitempty" gorm:"type:varchar(255);index"`
	DueDate    *time.Time     `json:"dueDate,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty" gorm:"type:jsonb"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy *string         `json:"createdBy,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

type CreateTaskRequest struct {
	Title      string         `json:"title" binding:"required,min=1,max=255"`
	Priority   *TaskPriority  `json:"priority,omitempty"`
	AssigneeID *string        `json:"assigneeId,omitempty"`
	DueDate    *time.Time     `json:"dueDate,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
}

type UpdateTaskRequest struct {
	Title      *string        `json:"title,omitempty"`
	Priority   *TaskPriority  `json:"priority,omitempty"`
	AssigneeID *string        `json:"assigneeId,omitempty"`
	DueDate    *time.Time     `json:"dueDate,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status" binding:"required"`
}

type TaskResponse struct {
	Success bool    `json:"success"`
	Data    *Task   `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

type TaskListResponse struct {
	Success    bool            `json:"success"`
	Data       []Task          `json:"data"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}
