package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mekabu-11/TODO-pair/config"
	"github.com/mekabu-11/TODO-pair/models"
)

// TaskController 任务控制器
type TaskController struct{}

// Index 列出顶层任务，支持分类、指派人、完成状态过滤
func (tc *TaskController) Index(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	coupleID, ok := requireCouple(c, user)
	if !ok {
		return
	}

	query := config.DB.Where("couple_id = ? AND parent_id IS NULL", coupleID).
		Order("created_at DESC, id DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if assignee := c.Query("assignee_id"); assignee != "" {
		assigneeID, err := strconv.ParseUint(assignee, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignee_id"})
			return
		}
		query = query.Where("assignee_id = ?", uint(assigneeID))
	}
	switch c.Query("status") {
	case "completed":
		query = query.Where("completed_at IS NOT NULL")
	case "incomplete":
		query = query.Where("completed_at IS NULL")
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		internalError(c, "任务列表查询失败", err)
		return
	}

	responses := make([]models.TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp, err := taskResponse(config.DB, &tasks[i], true)
		if err != nil {
			internalError(c, "任务响应构造失败", err)
			return
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// Show 返回任务详情，含评论与子任务
func (tc *TaskController) Show(c *gin.Context) {
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

	resp, err := taskResponse(config.DB, task, true)
	if err != nil {
		internalError(c, "任务响应构造失败", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create 创建任务
func (tc *TaskController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	coupleID, ok := requireCouple(c, user)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		CoupleID:    coupleID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		ParentID:    req.ParentID,
	}
	errs := models.ValidationErrors{}
	if req.Category != nil {
		category := models.Category(*req.Category)
		task.Category = &category
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		task.Priority = &priority
	}
	if req.DueDate != nil {
		dueDate, err := models.ParseDueDate(*req.DueDate)
		if err != nil {
			errs.Add("due_date", "is not a valid date")
		} else {
			task.DueDate = dueDate
		}
	}

	if ok := tc.validateTask(c, &task, errs); !ok {
		return
	}

	if err := config.DB.Create(&task).Error; err != nil {
		internalError(c, "任务创建失败", err)
		return
	}

	resp, err := taskResponse(config.DB, &task, false)
	if err != nil {
		internalError(c, "任务响应构造失败", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update 部分更新任务，缺省字段保持原值
func (tc *TaskController) Update(c *gin.Context) {
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

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errs := models.ValidationErrors{}
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		task.Category = &category
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		task.Priority = &priority
	}
	if req.DueDate != nil {
		dueDate, err := models.ParseDueDate(*req.DueDate)
		if err != nil {
			errs.Add("due_date", "is not a valid date")
		} else {
			task.DueDate = dueDate
		}
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.ParentID != nil {
		task.ParentID = req.ParentID
	}

	if ok := tc.validateTask(c, task, errs); !ok {
		return
	}

	if err := config.DB.Save(task).Error; err != nil {
		internalError(c, "任务更新失败", err)
		return
	}

	resp, err := taskResponse(config.DB, task, false)
	if err != nil {
		internalError(c, "任务响应构造失败", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Destroy 删除任务并级联删除子任务与评论
func (tc *TaskController) Destroy(c *gin.Context) {
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

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return models.DeleteTaskCascade(tx, task.ID)
	})
	if err != nil {
		internalError(c, "任务删除失败", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete 设置或清除完成时间
func (tc *TaskController) Complete(c *gin.Context) {
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

	// 允许空请求体，缺省视为完成
	var req models.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var completedAt *time.Time
	if req.Completed == nil || *req.Completed {
		now := time.Now()
		completedAt = &now
	}

	if err := config.DB.Model(task).Update("completed_at", completedAt).Error; err != nil {
		internalError(c, "完成状态更新失败", err)
		return
	}
	task.CompletedAt = completedAt

	resp, err := taskResponse(config.DB, task, false)
	if err != nil {
		internalError(c, "任务响应构造失败", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// validateTask 校验字段并在失败时响应422，涉及库内约束（父任务、指派人）
func (tc *TaskController) validateTask(c *gin.Context, task *models.Task, errs models.ValidationErrors) bool {
	if task.Title == "" {
		errs.Add("title", "can't be blank")
	}
	if task.Category != nil && !task.Category.Valid() {
		errs.Add("category", "is not included in the list")
	}
	if task.Priority != nil && !task.Priority.Valid() {
		errs.Add("priority", "is not included in the list")
	}

	if task.AssigneeID != nil {
		var count int64
		if err := config.DB.Model(&models.User{}).
			Where("id = ? AND couple_id = ?", *task.AssigneeID, task.CoupleID).
			Count(&count).Error; err != nil {
			internalError(c, "指派人校验失败", err)
			return false
		}
		if count == 0 {
			errs.Add("assignee_id", "must be a member of your couple")
		}
	}

	if task.ParentID != nil {
		if task.ID != 0 && *task.ParentID == task.ID {
			errs.Add("parent_id", "can't reference itself")
		} else {
			var parent models.Task
			err := config.DB.Where("id = ? AND couple_id = ?", *task.ParentID, task.CoupleID).
				First(&parent).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				errs.Add("parent_id", "must reference a task in your couple")
			case err != nil:
				internalError(c, "父任务校验失败", err)
				return false
			case parent.ParentID != nil:
				// 子任务不允许再挂子任务
				errs.Add("parent_id", "can't nest subtasks more than one level")
			case task.ID != 0:
				var children int64
				if err := config.DB.Model(&models.Task{}).
					Where("parent_id = ?", task.ID).Count(&children).Error; err != nil {
					internalError(c, "子任务校验失败", err)
					return false
				}
				if children > 0 {
					errs.Add("parent_id", "can't move a task with subtasks under a parent")
				}
			}
		}
	}

	if errs.Any() {
		respondValidationErrors(c, errs)
		return false
	}
	return true
}

// taskResponse 构造任务DTO，includeDetails时附带评论与子任务
func taskResponse(db *gorm.DB, task *models.Task, includeDetails bool) (models.TaskResponse, error) {
	resp := models.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Priority:    task.Priority,
		Completed:   task.Completed(),
		CompletedAt: task.CompletedAt,
		ParentID:    task.ParentID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.DueDate != nil {
		formatted := task.DueDate.Format(models.DueDateLayout)
		resp.DueDate = &formatted
	}

	if task.AssigneeID != nil {
		var assignee models.User
		err := db.First(&assignee, *task.AssigneeID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, err
		}
		if err == nil {
			member := memberResponse(&assignee)
			resp.Assignee = &member
		}
	}

	if err := db.Model(&models.Comment{}).Where("task_id = ?", task.ID).
		Count(&resp.CommentsCount).Error; err != nil {
		return resp, err
	}
	if err := db.Model(&models.Task{}).Where("parent_id = ?", task.ID).
		Count(&resp.SubtasksCount).Error; err != nil {
		return resp, err
	}

	if includeDetails {
		comments, err := commentResponses(db, task.ID)
		if err != nil {
			return resp, err
		}
		resp.Comments = comments

		var subtasks []models.Task
		if err := db.Where("parent_id = ?", task.ID).
			Order("created_at, id").Find(&subtasks).Error; err != nil {
			return resp, err
		}
		for i := range subtasks {
			subtaskResp, err := taskResponse(db, &subtasks[i], false)
			if err != nil {
				return resp, err
			}
			resp.Subtasks = append(resp.Subtasks, subtaskResp)
		}
	}
	return resp, nil
}
