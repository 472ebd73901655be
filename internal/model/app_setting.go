package model

// 可选主题
const (
	ThemeClassic  = "classic"
	ThemeOcean    = "ocean"
	ThemeForest   = "forest"
	ThemeSunset   = "sunset"
	ThemeNight    = "night"
	ThemeGraphite = "graphite"
	ThemeEmerald  = "emerald"
)

// Themes 允许的主题集合
var Themes = map[string]bool{
	ThemeClassic:  true,
	ThemeOcean:    true,
	ThemeForest:   true,
	ThemeSunset:   true,
	ThemeNight:    true,
	ThemeGraphite: true,
	ThemeEmerald:  true,
}

// AppSetting 应用设置表 — 对应 app_settings（单行，主键固定为 true）
type AppSetting struct {
	Singleton         bool   `gorm:"primaryKey;autoIncrement:false"           json:"-"`
	Theme             string `gorm:"type:varchar(20);not null;default:'classic'" json:"theme"`
	TakePhotoOnReport bool   `gorm:"not null"                                 json:"takePhotoOnReport"`
	BaseModel
}

// TableName 指定表名
func (AppSetting) TableName() string { return "app_settings" }

// DefaultAppSetting 未写入过设置时的默认值
func DefaultAppSetting() *AppSetting {
	return &AppSetting{
		Singleton:         true,
		Theme:             ThemeClassic,
		TakePhotoOnReport: true,
	}
}
