package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekabu-11/TODO-pair/config"
	"github.com/mekabu-11/TODO-pair/models"
)

func TestJoin_PairsUsersAndCleansUpEmptyCouple(t *testing.T) {
	r := newTestRouter(t)

	first, firstUser := signup(t, r, "a@example.com", "A")
	second, secondUser := signup(t, r, "b@example.com", "B")
	oldCoupleID := uint(secondUser["couple_id"].(float64))

	w := doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": firstUser["invite_code"],
	}, second)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeJSON(t, w)

	assert.EqualValues(t, firstUser["couple_id"], body["couple_id"])
	partner := body["partner"].(map[string]interface{})
	assert.Equal(t, "A", partner["name"])

	// 双方指向同一情侣，加入方为绿色
	var joined models.User
	require.NoError(t, config.DB.Where("email = ?", "b@example.com").First(&joined).Error)
	require.NotNil(t, joined.CoupleID)
	assert.EqualValues(t, firstUser["couple_id"].(float64), *joined.CoupleID)
	assert.Equal(t, models.ColorGreen, joined.Color)

	// 原情侣被清空后删除
	var count int64
	require.NoError(t, config.DB.Model(&models.Couple{}).Where("id = ?", oldCoupleID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// 双方 /me 均能看到对方
	w = doRequest(t, r, http.MethodGet, "/api/me", nil, first)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decodeJSON(t, w)["partner"])
}

func TestJoin_InvalidCode(t *testing.T) {
	r := newTestRouter(t)
	cookie, _ := signup(t, r, "a@example.com", "A")

	w := doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": "NOPE1234",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoin_CodeIsCaseInsensitive(t *testing.T) {
	r := newTestRouter(t)
	_, firstUser := signup(t, r, "a@example.com", "A")
	second, _ := signup(t, r, "b@example.com", "B")

	lower := []byte(firstUser["invite_code"].(string))
	for i, b := range lower {
		if b >= 'A' && b <= 'Z' {
			lower[i] = b + 32
		}
	}

	w := doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": string(lower),
	}, second)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestJoin_FullCoupleConflictMutatesNothing(t *testing.T) {
	r := newTestRouter(t)
	_, _, firstUser := signupPair(t, r)

	third, thirdUser := signup(t, r, "c@example.com", "C")
	w := doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": firstUser["invite_code"],
	}, third)
	require.Equal(t, http.StatusConflict, w.Code)

	// 第三人仍在自己的情侣中，颜色不变
	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "c@example.com").First(&user).Error)
	require.NotNil(t, user.CoupleID)
	assert.EqualValues(t, thirdUser["couple_id"].(float64), *user.CoupleID)
	assert.Equal(t, models.ColorBlue, user.Color)
}

func TestJoin_OwnCoupleConflict(t *testing.T) {
	r := newTestRouter(t)
	cookie, body := signup(t, r, "a@example.com", "A")

	w := doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": body["invite_code"],
	}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 已配对的一方再次使用同一邀请码同样失败
	first, second, firstUser := signupPair(t, r)
	w = doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": firstUser["invite_code"],
	}, second)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doRequest(t, r, http.MethodPost, "/api/couples/join", gin.H{
		"invite_code": firstUser["invite_code"],
	}, first)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCoupleShow_ListsMembers(t *testing.T) {
	r := newTestRouter(t)
	first, _, firstUser := signupPair(t, r)

	w := doRequest(t, r, http.MethodGet, "/api/couple", nil, first)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)

	assert.Equal(t, firstUser["invite_code"], body["invite_code"])
	members := body["members"].([]interface{})
	require.Len(t, members, 2)
}

func TestCoupleShow_NotFoundWithoutCouple(t *testing.T) {
	r := newTestRouter(t)
	cookie, body := signup(t, r, "a@example.com", "A")

	// 直接清掉情侣引用，模拟过渡状态
	require.NoError(t, config.DB.Model(&models.User{}).
		Where("id = ?", uint(body["id"].(float64))).
		Update("couple_id", nil).Error)

	w := doRequest(t, r, http.MethodGet, "/api/couple", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
