package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// TaskHandler 任务目录 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// ListTasks GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, dto.TaskListResponse{Tasks: tasks})
}

// CreateTask POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req, "taskName is required") {
		return
	}

	tasks, err := h.taskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.CreatedWithMessage(c, "Task created successfully.", dto.TaskListResponse{Tasks: tasks})
}

// UpdateTask PATCH /api/tasks
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req, "taskId and taskName are required") {
		return
	}

	tasks, err := h.taskSvc.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OKWithMessage(c, "Task updated successfully.", dto.TaskListResponse{Tasks: tasks})
}

// DeleteTask DELETE /api/tasks?taskId=
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	var req dto.DeleteTaskRequest
	if !bindQuery(c, &req, "taskId is required") {
		return
	}

	tasks, err := h.taskSvc.Delete(c.Request.Context(), req.TaskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OKWithMessage(c, "Task deleted successfully.", dto.TaskListResponse{Tasks: tasks})
}
