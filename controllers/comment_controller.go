package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mekabu-11/TODO-pair/config"
	"github.com/mekabu-11/TODO-pair/models"
)

// CommentController 评论控制器
type CommentController struct{}

// Index 按创建时间升序返回任务的全部评论
func (cc *CommentController) Index(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	coupleID, ok := requireCouple(c, user)
	if !ok {
		return
	}

	task, ok := findCoupleTask(c, coupleID)
	if !ok {
		return
	}

	responses, err := commentResponses(config.DB, task.ID)
	if err != nil {
		internalError(c, "评论列表查询失败", err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// Create 在任务下创建评论，作者为当前用户
func (cc *CommentController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	coupleID, ok := requireCouple(c, user)
	if !ok {
		return
	}

	task, ok := findCoupleTask(c, coupleID)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		errs := models.ValidationErrors{}
		errs.Add("content", "can't be blank")
		respondValidationErrors(c, errs)
		return
	}

	comment := models.Comment{
		TaskID:  task.ID,
		UserID:  user.ID,
		Content: content,
	}
	if err := config.DB.Create(&comment).Error; err != nil {
		internalError(c, "评论创建失败", err)
		return
	}

	c.JSON(http.StatusCreated, models.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		User:      memberResponse(user),
		CreatedAt: comment.CreatedAt,
	})
}

// Destroy 删除评论，通过任务关联限定在当前情侣范围内
func (cc *CommentController) Destroy(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	coupleID, ok := requireCouple(c, user)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var comment models.Comment
	err = config.DB.
		Joins("JOIN tasks ON tasks.id = comments.task_id").
		Where("comments.id = ? AND tasks.couple_id = ?", uint(id), coupleID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if err != nil {
		internalError(c, "评论查询失败", err)
		return
	}

	if err := config.DB.Delete(&comment).Error; err != nil {
		internalError(c, "评论删除失败", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// commentResponses 加载任务评论并批量补齐作者摘要
func commentResponses(db *gorm.DB, taskID uint) ([]models.CommentResponse, error) {
	var comments []models.Comment
	if err := db.Where("task_id = ?", taskID).
		Order("created_at, id").Find(&comments).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(comments))
	seen := make(map[uint]bool)
	for i := range comments {
		if !seen[comments[i].UserID] {
			seen[comments[i].UserID] = true
			userIDs = append(userIDs, comments[i].UserID)
		}
	}

	authors := make(map[uint]models.MemberResponse, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for i := range users {
			authors[users[i].ID] = memberResponse(&users[i])
		}
	}

	responses := make([]models.CommentResponse, len(comments))
	for i := range comments {
		responses[i] = models.CommentResponse{
			ID:        comments[i].ID,
			Content:   comments[i].Content,
			User:      authors[comments[i].UserID],
			CreatedAt: comments[i].CreatedAt,
		}
	}
	return responses, nil
}
