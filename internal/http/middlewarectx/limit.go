package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/timesheet-service/internal/http/response"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter ограничивает число запросов на клиента в пределах окна.
// Лимитер не блокирует: исчерпанная квота сразу даёт отказ.
type ClientLimiter struct {
	mu          sync.Mutex
	clients     map[string]*client
	limit       rate.Limit
	burst       int
	window      time.Duration
	lastCleanup time.Time
}

// NewClientLimiter создает лимитер на max событий в окне window для каждого клиента.
// Ведро пополняется одним токеном за окно: внутри одного окна клиент
// получает не больше max+1 попыток.
func NewClientLimiter(max int, window time.Duration) *ClientLimiter {
	return &ClientLimiter{
		clients:     make(map[string]*client),
		limit:       rate.Every(window),
		burst:       max,
		window:      window,
		lastCleanup: time.Now(),
	}
}

// Allow сообщает, укладывается ли очередной запрос клиента в квоту.
func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastCleanup) > l.window {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > l.window {
				delete(l.clients, k)
			}
		}
		l.lastCleanup = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.Allow()
}

// clientKey определяет сетевую идентичность клиента по адресу соединения.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware возвращает middleware, отклоняющий запросы сверх квоты
// клиента с HTTP статусом 429 и сообщением message.
func RateLimitMiddleware(limiter *ClientLimiter, message string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				log.Info("too many requests", slog.String("client", clientKey(r)))
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.Error(message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
