package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/timesheet-service/internal/models"
)

type memoryEntry struct {
	sess      models.Session
	expiresAt time.Time
}

// MemoryStore хранит сессии в памяти процесса. Подходит для одного
// экземпляра сервиса и для тестов; срок жизни проверяется при чтении,
// брошенные токены выметаются при создании новых сессий.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore создает пустое хранилище сессий в памяти.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:   make(map[string]memoryEntry),
		ttl:       ttl,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// Create сохраняет сессию под новым токеном. Не чаще раза в ttl
// попутно удаляет истекшие записи, чтобы карта не росла бесконечно.
func (s *MemoryStore) Create(_ context.Context, sess models.Session) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > s.ttl {
		for t, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, t)
			}
		}
		s.lastSweep = now
	}

	s.entries[token] = memoryEntry{
		sess:      sess,
		expiresAt: now.Add(s.ttl),
	}
	return token, nil
}

// Get возвращает сессию по токену. Истекшая запись удаляется на месте.
func (s *MemoryStore) Get(_ context.Context, token string) (*models.Session, error) {
	const op = "session.MemoryStore.Get"
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	sess := entry.sess
	return &sess, nil
}

// Delete уничтожает сессию по токену.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
