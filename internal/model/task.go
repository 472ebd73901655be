package model

// Task 清洁任务定义表 — 对应 tasks
type Task struct {
	TaskID      uint   `gorm:"primaryKey;autoIncrement"             json:"taskId"`
	Name        string `gorm:"type:varchar(100);not null"           json:"taskName"`
	Description string `gorm:"type:varchar(500);not null;default:''" json:"taskDescription"`
	BaseModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// BathroomTask 卫生间清单项 — 对应 bathroom_tasks（多对多关联）
type BathroomTask struct {
	BathroomID uint `gorm:"primaryKey;autoIncrement:false" json:"bathroomId"`
	TaskID     uint `gorm:"primaryKey;autoIncrement:false" json:"taskId"`

	Task *Task `gorm:"foreignKey:TaskID;references:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
}

// TableName 指定表名
func (BathroomTask) TableName() string { return "bathroom_tasks" }
