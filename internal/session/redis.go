package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/timesheet-service/internal/cache"
	"github.com/magabrotheeeer/timesheet-service/internal/models"
)

// RedisStore хранит сессии в redis, срок жизни обеспечивается TTL ключа.
type RedisStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewRedisStore создает хранилище сессий поверх подключения к redis.
func NewRedisStore(c *cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create сохраняет сессию под новым токеном с TTL хранилища.
func (s *RedisStore) Create(ctx context.Context, sess models.Session) (string, error) {
	const op = "session.RedisStore.Create"
	token := uuid.NewString()
	if err := s.cache.Set(ctx, sessionKey(token), sess, s.ttl); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Get возвращает сессию по токену. Истекший ключ redis удаляет сам,
// поэтому просроченная сессия выглядит как отсутствующая.
func (s *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	const op = "session.RedisStore.Get"
	var sess models.Session
	found, err := s.cache.Get(ctx, sessionKey(token), &sess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	return &sess, nil
}

// Delete уничтожает сессию по токену.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	const op = "session.RedisStore.Delete"
	if err := s.cache.Invalidate(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
