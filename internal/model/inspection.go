package model

import "time"

// Inspection 巡检不合格记录表 — 对应 inspections（只追加）
// UpdatedAt 在发送提醒邮件后刷新
type Inspection struct {
	InspectionID   uint      `gorm:"primaryKey;autoIncrement"              json:"inspectionId"`
	BathroomID     uint      `gorm:"not null;index"                        json:"bathroomId"`
	ImageURL       string    `gorm:"type:varchar(255);not null;default:''" json:"imageUrl"`
	InspectionDate time.Time `gorm:"not null;index"                        json:"inspectionDate"`
	BaseModel

	// 关联
	Bathroom *Bathroom        `gorm:"foreignKey:BathroomID;references:BathroomID"                                   json:"bathroom,omitempty"`
	Items    []InspectionItem `gorm:"foreignKey:InspectionID;references:InspectionID;constraint:OnDelete:CASCADE" json:"inspectedItems,omitempty"`
}

// TableName 指定表名
func (Inspection) TableName() string { return "inspections" }

// InspectionItem 巡检问题项 — 对应 inspection_items
type InspectionItem struct {
	InspectionItemID uint   `gorm:"primaryKey;autoIncrement"   json:"inspectionItemId"`
	InspectionID     uint   `gorm:"not null;index"             json:"inspectionId"`
	Reason           string `gorm:"type:varchar(255);not null" json:"inspectionReason"`
}

// TableName 指定表名
func (InspectionItem) TableName() string { return "inspection_items" }
