package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mekabu-11/TODO-pair/config"
	"github.com/mekabu-11/TODO-pair/models"
)

// currentUser 取出认证中间件写入的用户ID并加载用户
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	uid, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			internalError(c, "加载当前用户失败", err)
		}
		return nil, false
	}
	return &user, true
}

// requireCouple 任务与评论接口要求调用方已有情侣
func requireCouple(c *gin.Context, user *models.User) (uint, bool) {
	if user.CoupleID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No couple found"})
		return 0, false
	}
	return *user.CoupleID, true
}

// findCoupleTask 按情侣范围查找路径中的任务，范围外一律视为不存在
func findCoupleTask(c *gin.Context, coupleID uint) (*models.Task, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, false
	}

	var task models.Task
	err = config.DB.Where("id = ? AND couple_id = ?", uint(id), coupleID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, false
	}
	if err != nil {
		internalError(c, "任务查询失败", err)
		return nil, false
	}
	return &task, true
}

// partnerOf 查询情侣中除本人外的另一名成员，成员数不变量保证至多一人
func partnerOf(db *gorm.DB, user *models.User) (*models.MemberResponse, error) {
	if user.CoupleID == nil {
		return nil, nil
	}
	var partner models.User
	err := db.Where("couple_id = ? AND id <> ?", *user.CoupleID, user.ID).
		Limit(1).First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp := memberResponse(&partner)
	return &resp, nil
}

// memberResponse 构造成员摘要
func memberResponse(user *models.User) models.MemberResponse {
	return models.MemberResponse{
		ID:    user.ID,
		Name:  user.Name,
		Color: user.Color,
	}
}

// userResponse 构造认证接口的用户DTO
func userResponse(db *gorm.DB, user *models.User) (models.UserResponse, error) {
	resp := models.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Color:    user.Color,
		CoupleID: user.CoupleID,
	}

	if user.CoupleID != nil {
		var couple models.Couple
		if err := db.First(&couple, *user.CoupleID).Error; err != nil {
			return resp, err
		}
		resp.InviteCode = &couple.InviteCode

		partner, err := partnerOf(db, user)
		if err != nil {
			return resp, err
		}
		resp.Partner = partner
	}
	return resp, nil
}

// respondValidationErrors 按字段返回422校验错误
func respondValidationErrors(c *gin.Context, errs models.ValidationErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// internalError 记录日志并返回通用500
func internalError(c *gin.Context, msg string, err error) {
	config.Logger.Errorw(msg,
		"error", err,
		"path", c.Request.URL.Path,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
