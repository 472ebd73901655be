package model

// 卫生间状态
const (
	BathroomStatusOpen      = "open"
	BathroomStatusInspected = "inspected"
)

// Bathroom 卫生间表 — 对应 bathrooms
// Order 在同一 location 的有效记录内保持 1..N 连续
type Bathroom struct {
	BathroomID        uint    `gorm:"primaryKey;autoIncrement"                json:"bathroomId"`
	LocationID        uint    `gorm:"not null;index:idx_bathrooms_location_order,priority:1" json:"locationId"`
	Name              string  `gorm:"type:varchar(100);not null"              json:"name"`
	Gender            string  `gorm:"type:varchar(20);not null"               json:"gender"`
	Status            string  `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Order             int     `gorm:"column:display_order;not null;index:idx_bathrooms_location_order,priority:2" json:"order"`
	NotificationEmail *string `gorm:"type:varchar(255)"                       json:"notificationEmail"`
	Active            bool    `gorm:"not null"                                json:"active"`
	BaseModel

	// 关联
	Location      *Location      `gorm:"foreignKey:LocationID;references:LocationID"                               json:"location,omitempty"`
	BathroomTasks []BathroomTask `gorm:"foreignKey:BathroomID;references:BathroomID;constraint:OnDelete:CASCADE" json:"bathroomTasks,omitempty"`
	Cleanings     []Cleaning     `gorm:"foreignKey:BathroomID;references:BathroomID;constraint:OnDelete:CASCADE" json:"cleanings,omitempty"`
	Inspections   []Inspection   `gorm:"foreignKey:BathroomID;references:BathroomID;constraint:OnDelete:CASCADE" json:"inspections,omitempty"`
}

// TableName 指定表名
func (Bathroom) TableName() string { return "bathrooms" }
