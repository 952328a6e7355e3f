package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mekabu-11/TODO-pair/config"
	"github.com/mekabu-11/TODO-pair/middleware"
	"github.com/mekabu-11/TODO-pair/models"
	"github.com/mekabu-11/TODO-pair/services"
	"github.com/mekabu-11/TODO-pair/utils"
)

// AuthController 认证控制器
type AuthController struct {
	Sessions services.SessionStore
	TTL      time.Duration
}

// NewAuthController 创建认证控制器
func NewAuthController(sessions services.SessionStore, ttl time.Duration) *AuthController {
	return &AuthController{Sessions: sessions, TTL: ttl}
}

// Signup 注册：创建新情侣并以蓝色加入
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	errs := models.ValidationErrors{}
	if req.Email == "" {
		errs.Add("email", "can't be blank")
	}
	if req.Name == "" {
		errs.Add("name", "can't be blank")
	}
	if req.Password == "" {
		errs.Add("password", "can't be blank")
	}
	if req.Password != req.PasswordConfirmation {
		errs.Add("password_confirmation", "doesn't match password")
	}
	if req.Email != "" {
		var count int64
		if err := config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			internalError(c, "注册查询失败", err)
			return
		}
		if count > 0 {
			errs.Add("email", "has already been taken")
		}
	}
	if errs.Any() {
		respondValidationErrors(c, errs)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		internalError(c, "密码哈希失败", err)
		return
	}

	var user models.User
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		couple := models.Couple{}
		if err := tx.Create(&couple).Error; err != nil {
			return err
		}
		user = models.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hash,
			Color:        models.ColorBlue, // 首位成员固定蓝色
			CoupleID:     &couple.ID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		internalError(c, "用户创建失败", err)
		return
	}

	config.Logger.Infow("用户注册成功",
		"userID", user.ID,
		"coupleID", *user.CoupleID,
	)

	if !ac.establishSession(c, user.ID) {
		return
	}

	resp, err := userResponse(config.DB, &user)
	if err != nil {
		internalError(c, "构造用户响应失败", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login 登录，凭证错误时不区分邮箱与密码
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	var user models.User
	err := config.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !utils.CheckPassword(user.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		internalError(c, "登录查询失败", err)
		return
	}

	if !ac.establishSession(c, user.ID) {
		return
	}

	resp, err := userResponse(config.DB, &user)
	if err != nil {
		internalError(c, "构造用户响应失败", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout 登出，无会话也返回成功
func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := ac.Sessions.Delete(c.Request.Context(), token); err != nil {
			config.Logger.Warnw("会话删除失败", "error", err)
		}
	}
	ac.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me 返回当前登录用户
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := userResponse(config.DB, user)
	if err != nil {
		internalError(c, "构造用户响应失败", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// establishSession 创建会话并写入Cookie
func (ac *AuthController) establishSession(c *gin.Context, userID uint) bool {
	token, err := ac.Sessions.Create(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "会话创建失败", err)
		return false
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token, int(ac.TTL.Seconds()), "/", "", false, true)
	return true
}

func (ac *AuthController) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}
