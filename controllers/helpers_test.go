package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mekabu-11/TODO-pair/config"
	"github.com/mekabu-11/TODO-pair/routes"
	"github.com/mekabu-11/TODO-pair/services"
)

const testPassword = "secret123"

// newTestRouter 基于内存SQLite与内存会话存储组装完整路由
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	if config.Logger == nil {
		config.Logger = zap.NewNop().Sugar()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateDB(db))
	config.DB = db

	sessions := services.NewMemorySessionStore(time.Hour)
	r := gin.New()
	routes.RegisterRoutes(r, sessions, time.Hour)
	return r
}

// doRequest 发送JSON请求
func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeJSON 解析响应体为map
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// decodeJSONList 解析响应体为数组
func decodeJSONList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// sessionCookie 从响应中取出会话Cookie
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_token" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("会话Cookie缺失")
	return nil
}

// signup 注册一名用户并返回会话Cookie与响应体
func signup(t *testing.T, r *gin.Engine, email, name string) (*http.Cookie, map[string]interface{}) {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/signup", gin.H{
		"email":                 email,
		"name":                  name,
		"password":              testPassword,
		"password_confirmation": testPassword,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return sessionCookie(t, w), decodeJSON(t, w)
}

// signupPair 注册两名用户并让第二名通过邀请码加入第一名的情侣
func signupPair(t *testing.T, r *gin.Engine) (first, second *http.Cookie, firstUser map[string]interface{}) {
	t.Helper()
	first, firstUser = signup(t, r, "a@example.com", "A")
	second, _ = signup(t, r, "b@example.com", "B")

	w := doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": firstUser["invite_code"],
	}, second)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return first, second, firstUser
}

// createTask 创建任务并返回响应体
func createTask(t *testing.T, r *gin.Engine, cookie *http.Cookie, body gin.H) map[string]interface{} {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/tasks", body, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON(t, w)
}

// taskID 从响应体中取任务ID
func taskID(t *testing.T, task map[string]interface{}) uint {
	t.Helper()
	id, ok := task["id"].(float64)
	require.True(t, ok, "任务ID缺失")
	return uint(id)
}
