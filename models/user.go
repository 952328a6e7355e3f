package models

import (
	"time"
)

// Color 成员颜色，情侣双方各占一色
type Color string

const (
	ColorBlue  Color = "blue"  // 先注册的一方
	ColorGreen Color = "green" // 通过邀请码加入的一方
)

// Valid 校验颜色取值
func (c Color) Valid() bool {
	return c == ColorBlue || c == ColorGreen
}

// User 用户模型
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Color        Color     `gorm:"type:varchar(10)" json:"color"`
	CoupleID     *uint     `gorm:"index" json:"couple_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
