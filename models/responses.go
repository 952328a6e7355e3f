package models

import "time"

// MemberResponse 成员摘要结构体（伴侣、指派人、评论作者共用）
type MemberResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// UserResponse 用户响应结构体
type UserResponse struct {
	ID         uint            `json:"id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Color      Color           `json:"color"`
	CoupleID   *uint           `json:"couple_id"`
	InviteCode *string         `json:"invite_code"`
	Partner    *MemberResponse `json:"partner"`
}

// CoupleResponse 情侣响应结构体
type CoupleResponse struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	InviteCode string           `json:"invite_code"`
	Members    []MemberResponse `json:"members"`
}

// JoinCoupleResponse 加入情侣响应结构体
type JoinCoupleResponse struct {
	Message  string          `json:"message"`
	CoupleID uint            `json:"couple_id"`
	Partner  *MemberResponse `json:"partner"`
}

// CommentResponse 评论响应结构体
type CommentResponse struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	User      MemberResponse `json:"user"`
	CreatedAt time.Time      `json:"created_at"`
}

// TaskResponse 任务响应结构体，详情场景附带评论与子任务
type TaskResponse struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      *Category         `json:"category"`
	Priority      *Priority         `json:"priority"`
	DueDate       *string           `json:"due_date"`
	Completed     bool              `json:"completed"`
	CompletedAt   *time.Time        `json:"completed_at"`
	Assignee      *MemberResponse   `json:"assignee"`
	ParentID      *uint             `json:"parent_id"`
	CommentsCount int64             `json:"comments_count"`
	SubtasksCount int64             `json:"subtasks_count"`
	Comments      []CommentResponse `json:"comments,omitempty"`
	Subtasks      []TaskResponse    `json:"subtasks,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
