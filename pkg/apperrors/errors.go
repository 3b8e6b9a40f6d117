package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别，决定 HTTP 状态码
type Kind int

const (
	KindValidation     Kind = iota // 400 参数错误
	KindAuthentication             // 401 未认证/Token 失效
	KindAuthorization              // 403 角色或归属不满足
	KindNotFound                   // 404 资源不存在（含跨租户屏蔽）
	KindConflict                   // 400 唯一约束冲突
	KindInternal                   // 500 存储或未知错误
)

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{} // 403 时的诊断信息
	Err     error                  // 底层错误，仅日志使用
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus 映射到 HTTP 状态码
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Authorization(msg string, details map[string]interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: msg, Details: details}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// As 提取业务错误，非业务错误归为 Internal
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// IsKind 判断错误类别
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
