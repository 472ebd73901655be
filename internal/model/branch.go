package model

// Branch 分支机构表 — 对应 branches
type Branch struct {
	BranchID             uint   `gorm:"primaryKey;autoIncrement"           json:"branchId"`
	Name                 string `gorm:"type:varchar(100);not null"         json:"name"`
	Address              string `gorm:"type:varchar(200);not null;default:''" json:"address"`
	ToNotificationEmails string `gorm:"type:varchar(500);not null;default:''" json:"toNotificationEmails"`
	CcNotificationEmails string `gorm:"type:varchar(500);not null;default:''" json:"ccNotificationEmails"`
	Active               bool   `gorm:"not null"                           json:"active"`
	BaseModel

	// 关联
	Locations []Location `gorm:"foreignKey:BranchID;references:BranchID;constraint:OnDelete:CASCADE" json:"locations,omitempty"`
}

// TableName 指定表名
func (Branch) TableName() string { return "branches" }
