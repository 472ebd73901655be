package model

// User 用户表 — 对应 users
// Code 为 4 位清洁授权码，可为空，非空时全局唯一
type User struct {
	UserID       uint    `gorm:"primaryKey;autoIncrement"           json:"id"`
	Username     string  `gorm:"type:varchar(100);not null"         json:"username"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Code         *string `gorm:"type:varchar(4);uniqueIndex:idx_users_code"             json:"code"`
	IsAdmin      bool    `gorm:"not null"                           json:"isAdmin"`
	Active       bool    `gorm:"not null"                           json:"active"`
	PasswordHash string  `gorm:"type:varchar(255);not null;default:''" json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
