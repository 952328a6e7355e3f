package utils

import (
	"crypto/rand"
	"fmt"
)

// 邀请码字符集：大写字母加数字
const inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength 邀请码长度
const InviteCodeLength = 8

// GenerateInviteCode 生成8位大写字母数字邀请码
func GenerateInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("邀请码随机数生成失败: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeCharset[int(b)%len(inviteCodeCharset)]
	}
	return string(buf), nil
}
