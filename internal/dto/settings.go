package dto

// ── 应用设置 DTO ──

// Settings 对外暴露的应用设置
type Settings struct {
	Theme             string `json:"theme"`
	TakePhotoOnReport bool   `json:"takePhotoOnReport"`
}

// SettingsResponse 设置响应
type SettingsResponse struct {
	Settings Settings `json:"settings"`
}

// UpdateSettingsRequest 更新拍照开关请求
// 指针类型区分缺省与 false，非布尔值在绑定阶段即被拒绝
type UpdateSettingsRequest struct {
	TakePhotoOnReport *bool `json:"takePhotoOnReport" binding:"required"`
}

// UpdateThemeRequest 更新主题请求
type UpdateThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// ThemeResponse 主题响应
type ThemeResponse struct {
	Theme string `json:"theme"`
}
