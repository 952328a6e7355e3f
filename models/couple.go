package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mekabu-11/TODO-pair/utils"
)

// Couple 情侣模型，最多两名成员共享一份任务清单
type Couple struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(100)" json:"name"`
	InviteCode string    `gorm:"type:varchar(8);uniqueIndex;not null" json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate 创建时生成唯一邀请码，冲突则重试
func (cp *Couple) BeforeCreate(tx *gorm.DB) error {
	if cp.InviteCode != "" {
		return nil
	}
	for i := 0; i < 5; i++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&Couple{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			cp.InviteCode = code
			return nil
		}
	}
	return fmt.Errorf("邀请码生成失败: 连续冲突")
}

// MemberCount 返回情侣当前成员数
func (cp *Couple) MemberCount(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&User{}).Where("couple_id = ?", cp.ID).Count(&count).Error
	return count, err
}

// DeleteCoupleCascade 删除情侣及其全部任务（含子任务和评论）
func DeleteCoupleCascade(tx *gorm.DB, coupleID uint) error {
	var taskIDs []uint
	if err := tx.Model(&Task{}).Where("couple_id = ?", coupleID).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if len(taskIDs) > 0 {
		if err := tx.Where("task_id IN ?", taskIDs).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("couple_id = ?", coupleID).Delete(&Task{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&Couple{}, coupleID).Error
}
