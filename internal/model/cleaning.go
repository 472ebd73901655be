package model

import "time"

// Cleaning 清洁记录表 — 对应 cleanings（只追加）
type Cleaning struct {
	CleaningID uint      `gorm:"primaryKey;autoIncrement"            json:"cleaningId"`
	BathroomID uint      `gorm:"not null;index"                      json:"bathroomId"`
	UserID     *uint     `gorm:"index"                               json:"userId"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"createdAt"`

	// 关联
	User     *User          `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:SET NULL"           json:"user,omitempty"`
	Bathroom *Bathroom      `gorm:"foreignKey:BathroomID;references:BathroomID"                                json:"bathroom,omitempty"`
	Tasks    []CleaningTask `gorm:"foreignKey:CleaningID;references:CleaningID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// TableName 指定表名
func (Cleaning) TableName() string { return "cleanings" }

// CleaningTask 本次清洁实际完成的任务 — 对应 cleaning_tasks
type CleaningTask struct {
	CleaningID uint `gorm:"primaryKey;autoIncrement:false" json:"cleaningId"`
	TaskID     uint `gorm:"primaryKey;autoIncrement:false" json:"taskId"`

	Task *Task `gorm:"foreignKey:TaskID;references:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
}

// TableName 指定表名
func (CleaningTask) TableName() string { return "cleaning_tasks" }
