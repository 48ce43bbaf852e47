package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backoffice-service/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(tenantID string, task *models.Task) error {
	task.TenantID = tenantID
	return r.db.Create(task).Error
}

func (r *TaskRepository) GetTaskByID(tenantID string, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&task).Error
	return &task, err
}

func (r *TaskRepository) ListTasks(tenantID string, status *models.TaskStatus, assigneeID *string, page, limit int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64
	query := r.db.Where("tenant_id = ?", tenantID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if assigneeID != nil {
		query = query.Where("assignee_id = ?", *assigneeID)
	}

	if err := query.Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, total, err
}

func (r *TaskRepository) UpdateTask(tenantID string, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Task{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepository) UpdateTaskStatus(tenantID string, id uuid.UUID, status models.TaskStatus) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == models.TaskStatusDone {
		now := time.Now()
		updates["completed_at"] = &now
	}
	return r.UpdateTask(tenantID, id, updates)
}

func (r *TaskRepository) DeleteTask(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
