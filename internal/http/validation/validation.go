// Package validation собирает валидатор с дополнительными правилами
// для имён пользователей, сложности паролей и JSON-объектов.
package validation

import (
	"bytes"
	"regexp"
	"unicode"

	"github.com/go-playground/validator"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// New возвращает валидатор с зарегистрированными пользовательскими правилами:
// username_charset, password_strength и json_object.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username_charset", usernameCharset)
	_ = v.RegisterValidation("password_strength", passwordStrength)
	_ = v.RegisterValidation("json_object", jsonObject)
	return v
}

func usernameCharset(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// passwordStrength требует минимум одну строчную букву, одну заглавную и одну цифру.
// Длина проверяется отдельными правилами min/max.
func passwordStrength(fl validator.FieldLevel) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// jsonObject принимает только JSON-объект: скаляры, массивы и null отклоняются.
func jsonObject(fl validator.FieldLevel) bool {
	raw := bytes.TrimSpace(fl.Field().Bytes())
	return len(raw) > 0 && raw[0] == '{'
}
