package models

import (
	"time"
)

// DueDateLayout 截止日期的序列化格式
const DueDateLayout = "2006-01-02"

// SignupRequest 注册请求结构体
type SignupRequest struct {
	Email                string `json:"email"`
	Name                 string `json:"name"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// JoinCoupleRequest 加入情侣请求结构体
type JoinCoupleRequest struct {
	InviteCode string `json:"invite_code"`
}

// CreateTaskRequest 创建任务请求结构体
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
	Priority    *int    `json:"priority"`
	DueDate     *string `json:"due_date"`
	AssigneeID  *uint   `json:"assignee_id"`
	ParentID    *uint   `json:"parent_id"`
}

// UpdateTaskRequest 更新任务请求结构体，缺省字段保持不变
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *int    `json:"priority"`
	DueDate     *string `json:"due_date"`
	AssigneeID  *uint   `json:"assignee_id"`
	ParentID    *uint   `json:"parent_id"`
}

// CompleteTaskRequest 完成状态切换请求结构体，缺省视为完成
type CompleteTaskRequest struct {
	Completed *bool `json:"completed"`
}

// CreateCommentRequest 创建评论请求结构体
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ParseDueDate 解析 YYYY-MM-DD 格式的截止日期
func ParseDueDate(value string) (*time.Time, error) {
	parsed, err := time.Parse(DueDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
