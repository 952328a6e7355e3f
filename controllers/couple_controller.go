package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mekabu-11/TODO-pair/config"
	"github.com/mekabu-11/TODO-pair/models"
)

// CoupleController 情侣配对控制器
type CoupleController struct{}

// Join 通过邀请码加入情侣，原情侣被清空时一并删除
func (cc *CoupleController) Join(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.JoinCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))

	var couple models.Couple
	err := config.DB.Where("invite_code = ?", code).First(&couple).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite code"})
		return
	}
	if err != nil {
		internalError(c, "邀请码查询失败", err)
		return
	}

	memberCount, err := couple.MemberCount(config.DB)
	if err != nil {
		internalError(c, "成员数查询失败", err)
		return
	}
	if memberCount >= 2 {
		c.JSON(http.StatusConflict, gin.H{"error": "This couple already has two members"})
		return
	}

	if user.CoupleID != nil && *user.CoupleID == couple.ID {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already in this couple"})
		return
	}

	// 改派与空情侣清理放在同一事务内
	previousCoupleID := user.CoupleID
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Updates(map[string]interface{}{
			"couple_id": couple.ID,
			"color":     models.ColorGreen, // 加入方固定绿色
		}).Error; err != nil {
			return err
		}

		if previousCoupleID != nil {
			var remaining int64
			if err := tx.Model(&models.User{}).Where("couple_id = ?", *previousCoupleID).Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				return models.DeleteCoupleCascade(tx, *previousCoupleID)
			}
		}
		return nil
	})
	if err != nil {
		internalError(c, "加入情侣失败", err)
		return
	}

	user.CoupleID = &couple.ID
	user.Color = models.ColorGreen

	config.Logger.Infow("加入情侣成功",
		"userID", user.ID,
		"coupleID", couple.ID,
	)

	partner, err := partnerOf(config.DB, user)
	if err != nil {
		internalError(c, "伴侣查询失败", err)
		return
	}

	c.JSON(http.StatusOK, models.JoinCoupleResponse{
		Message:  "Successfully joined couple",
		CoupleID: couple.ID,
		Partner:  partner,
	})
}

// Show 返回当前用户的情侣信息
func (cc *CoupleController) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.CoupleID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No couple found"})
		return
	}

	var couple models.Couple
	if err := config.DB.First(&couple, *user.CoupleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No couple found"})
		} else {
			internalError(c, "情侣查询失败", err)
		}
		return
	}

	var members []models.User
	if err := config.DB.Where("couple_id = ?", couple.ID).Order("id").Find(&members).Error; err != nil {
		internalError(c, "成员查询失败", err)
		return
	}

	memberResponses := make([]models.MemberResponse, len(members))
	for i := range members {
		memberResponses[i] = memberResponse(&members[i])
	}

	c.JSON(http.StatusOK, models.CoupleResponse{
		ID:         couple.ID,
		Name:       couple.Name,
		InviteCode: couple.InviteCode,
		Members:    memberResponses,
	})
}
