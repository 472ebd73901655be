package model

// Location 区域表 — 对应 locations（软删除：active=false）
type Location struct {
	LocationID  uint   `gorm:"primaryKey;autoIncrement"             json:"locationId"`
	BranchID    uint   `gorm:"not null;index"                       json:"branchId"`
	Name        string `gorm:"type:varchar(100);not null"           json:"locationName"`
	Description string `gorm:"type:varchar(500);not null;default:''" json:"locationDescription"`
	Active      bool   `gorm:"not null"                             json:"active"`
	BaseModel

	// 关联
	Branch    *Branch    `gorm:"foreignKey:BranchID;references:BranchID"                                 json:"branch,omitempty"`
	Bathrooms []Bathroom `gorm:"foreignKey:LocationID;references:LocationID;constraint:OnDelete:CASCADE" json:"bathrooms,omitempty"`
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }
