package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lavtracker/backend/internal/model"
)

// ── 卫生间模块 DTO ──

// TaskRef 任务引用，兼容数字 id 与 {"taskId": n} 两种写法
type TaskRef uint

// UnmarshalJSON 解析数字或对象形式的任务引用
func (r *TaskRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			TaskID uint `json:"taskId"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = TaskRef(obj.TaskID)
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid task reference %s", data)
	}
	*r = TaskRef(id)
	return nil
}

// TaskIDs 转换为去重后的任务 id 列表，保持原顺序，忽略 0
func TaskIDs(refs []TaskRef) []uint {
	seen := make(map[uint]bool, len(refs))
	ids := make([]uint, 0, len(refs))
	for _, ref := range refs {
		id := uint(ref)
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// CreateBathroomRequest 创建卫生间请求
// order 省略时追加到区域末尾
type CreateBathroomRequest struct {
	LocationID        uint      `json:"locationId"        binding:"required"`
	Name              string    `json:"name"              binding:"required,min=1,max=100"`
	Gender            string    `json:"gender"            binding:"required,max=20"`
	Order             *int      `json:"order"             binding:"omitempty,min=1"`
	TaskIDs           []TaskRef `json:"taskIds"`
	NotificationEmail string    `json:"notificationEmail" binding:"omitempty,email,max=255"`
}

// UpdateBathroomRequest 更新卫生间请求
// order 与当前值不同时触发重排；tasks 省略时保留原有清单
type UpdateBathroomRequest struct {
	BathroomID        uint       `json:"bathroomId"        binding:"required"`
	LocationID        uint       `json:"locationId"        binding:"required"`
	Name              *string    `json:"name"              binding:"omitempty,min=1,max=100"`
	Gender            *string    `json:"gender"            binding:"omitempty,max=20"`
	Order             *int       `json:"order"             binding:"omitempty,min=1"`
	Tasks             *[]TaskRef `json:"tasks"`
	NotificationEmail *string    `json:"notificationEmail" binding:"omitempty,email,max=255"`
}

// BathroomListRequest 卫生间列表查询参数
type BathroomListRequest struct {
	LocationID uint `form:"locationId" binding:"required"`
}

// DeleteBathroomRequest 删除卫生间查询参数
type DeleteBathroomRequest struct {
	BathroomID uint `form:"bathroomId" binding:"required"`
	LocationID uint `form:"locationId" binding:"required"`
}

// BathroomResponse 单个卫生间响应（含完整关联）
type BathroomResponse struct {
	Bathroom *model.Bathroom `json:"bathroom"`
}

// BathroomListResponse 区域卫生间视图响应
type BathroomListResponse struct {
	Bathrooms []model.Bathroom `json:"bathrooms"`
}
