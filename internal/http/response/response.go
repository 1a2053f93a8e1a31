// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error по ошибкам валидации.
// Возвращается сообщение только первого нарушенного правила: проверка
// останавливается на первой ошибке, остальные поля не разбираются.
func ValidationError(errs validator.ValidationErrors) Response {
	if len(errs) == 0 {
		return Response{Status: StatusError, Error: "validation failed"}
	}

	err := errs[0]
	var msg string
	switch err.ActualTag() {
	case "required":
		msg = fmt.Sprintf("field %s is a required field", err.Field())
	case "min":
		msg = fmt.Sprintf("field %s must be at least %s characters long", err.Field(), err.Param())
	case "max":
		msg = fmt.Sprintf("field %s must be at most %s characters long", err.Field(), err.Param())
	case "gte":
		msg = fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param())
	case "lte":
		msg = fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param())
	case "username_charset":
		msg = fmt.Sprintf("field %s may contain only letters, digits, - and _", err.Field())
	case "password_strength":
		msg = fmt.Sprintf("field %s must contain at least one lowercase letter, one uppercase letter and one digit", err.Field())
	case "json_object":
		msg = fmt.Sprintf("field %s must be a JSON object", err.Field())
	default:
		msg = fmt.Sprintf("field %s is not a valid", err.Field())
	}
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}
