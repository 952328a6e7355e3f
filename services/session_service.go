package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("会话不存在或已过期")

// SessionStore 会话存储接口，令牌为不透明字符串，仅映射到用户ID
type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
}

// RedisSessionStore 基于Redis的会话存储
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore 创建Redis会话存储
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisSessionStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(token), strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("会话写入失败: %w", err)
	}
	return token, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (uint, error) {
	value, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("会话读取失败: %w", err)
	}
	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return uint(userID), nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

// MemorySessionStore 进程内会话存储，测试环境使用
type MemorySessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memorySession
}

// NewMemorySessionStore 创建内存会话存储
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memorySession),
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = memorySession{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemorySessionStore) Get(ctx context.Context, token string) (uint, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(session.expiresAt) {
		return 0, ErrSessionNotFound
	}
	return session.userID, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
