// Package cookies управляет cookie сессионного токена.
//
// Токен выдаётся как HttpOnly cookie со строгим SameSite; флаг Secure
// включается в продакшене, где сервис доступен только по HTTPS.
package cookies

import (
	"net/http"
	"time"
)

// Helper выставляет и очищает сессионную cookie с едиными атрибутами.
type Helper struct {
	name   string
	ttl    time.Duration
	secure bool
}

// New создает Helper для cookie с заданным именем, сроком жизни и флагом Secure.
func New(name string, ttl time.Duration, secure bool) *Helper {
	return &Helper{
		name:   name,
		ttl:    ttl,
		secure: secure,
	}
}

// Set выставляет сессионную cookie с токеном.
func (h *Helper) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear просит клиента удалить сессионную cookie.
func (h *Helper) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Read возвращает токен из запроса или пустую строку, если cookie нет.
func (h *Helper) Read(r *http.Request) string {
	c, err := r.Cookie(h.name)
	if err != nil {
		return ""
	}
	return c.Value
}
