package model

import "time"

// BaseModel 通用审计字段（业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// All 返回需要建表的全部模型，顺序满足外键依赖
// 非 PostgreSQL 驱动与测试环境通过 AutoMigrate 建表
func All() []interface{} {
	return []interface{}{
		&Branch{},
		&Location{},
		&Task{},
		&Bathroom{},
		&BathroomTask{},
		&User{},
		&Cleaning{},
		&CleaningTask{},
		&Inspection{},
		&InspectionItem{},
		&AppSetting{},
	}
}
