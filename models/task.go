package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 任务分类
type Category string

const (
	CategoryMoney     Category = "money"     // 金钱
	CategoryProcedure Category = "procedure" // 手续
	CategoryEvent     Category = "event"     // 活动
	CategoryHealth    Category = "health"    // 健康
	CategoryOther     Category = "other"     // 其他
)

// Valid 校验分类取值
func (c Category) Valid() bool {
	switch c {
	case CategoryMoney, CategoryProcedure, CategoryEvent, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// Priority 任务优先级
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Valid 校验优先级取值
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Task 任务模型，ParentID 非空时为子任务（仅允许一层嵌套）
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CoupleID    uint       `gorm:"index;not null" json:"couple_id"`
	AssigneeID  *uint      `gorm:"index" json:"assignee_id"`
	ParentID    *uint      `gorm:"index" json:"parent_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    *Category  `gorm:"type:varchar(20)" json:"category"`
	Priority    *Priority  `json:"priority"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Completed 任务是否已完成，以完成时间是否存在为准
func (t *Task) Completed() bool {
	return t.CompletedAt != nil
}

// Complete 标记完成，记录完成时间
func (t *Task) Complete(now time.Time) {
	t.CompletedAt = &now
}

// Incomplete 取消完成
func (t *Task) Incomplete() {
	t.CompletedAt = nil
}

// DeleteTaskCascade 删除任务及其子任务和全部评论
func DeleteTaskCascade(tx *gorm.DB, taskID uint) error {
	var subtaskIDs []uint
	if err := tx.Model(&Task{}).Where("parent_id = ?", taskID).Pluck("id", &subtaskIDs).Error; err != nil {
		return err
	}
	ids := append(subtaskIDs, taskID)
	if err := tx.Where("task_id IN ?", ids).Delete(&Comment{}).Error; err != nil {
		return err
	}
	if len(subtaskIDs) > 0 {
		if err := tx.Where("parent_id = ?", taskID).Delete(&Task{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&Task{}, taskID).Error
}
