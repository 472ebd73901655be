package dto

// ── 导出模块 DTO ──

// ExportCleaningsRequest 清洁记录导出参数，日期格式 2006-01-02，to 为包含当天
type ExportCleaningsRequest struct {
	LocationID uint   `form:"locationId" binding:"required"`
	From       string `form:"from"       binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"         binding:"omitempty,datetime=2006-01-02"`
}

// ExportInspectionsRequest 巡检日历导出参数
type ExportInspectionsRequest struct {
	LocationID uint `form:"locationId" binding:"required"`
}
