package dto

// ── 巡检流程 DTO ──

// InspectRequest 提交巡检不合格记录请求
// image 可为 data URI 或纯 base64
type InspectRequest struct {
	BathroomID uint     `json:"bathroomId" binding:"required"`
	LocationID uint     `json:"locationId" binding:"required"`
	Items      []string `json:"items"      binding:"required,min=1,dive,notblank,max=255"`
	Image      string   `json:"image"`
}

// ClearInspectionRequest 解除巡检状态请求
type ClearInspectionRequest struct {
	BathroomID uint `json:"bathroomId" binding:"required"`
	LocationID uint `json:"locationId" binding:"required"`
}

// ReminderResult 提醒批次结果
type ReminderResult struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Skipped int  `json:"skipped"`
	Failed  int  `json:"failed"`
}
