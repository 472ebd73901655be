package dto

import "lavtracker/backend/internal/model"

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	TaskName        string `json:"taskName"        binding:"required,min=1,max=100"`
	TaskDescription string `json:"taskDescription" binding:"omitempty,max=500"`
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	TaskID          uint    `json:"taskId"          binding:"required"`
	TaskName        string  `json:"taskName"        binding:"required,min=1,max=100"`
	TaskDescription *string `json:"taskDescription" binding:"omitempty,max=500"`
}

// DeleteTaskRequest 删除任务查询参数
type DeleteTaskRequest struct {
	TaskID uint `form:"taskId" binding:"required"`
}

// TaskListResponse 任务列表响应
type TaskListResponse struct {
	Tasks []model.Task `json:"tasks"`
}
