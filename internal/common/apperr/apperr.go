package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 业务错误码。这些都是“调用方可恢复”的预期错误，
// 与致命错误（持久化失败等）区分，由 HTTP 层映射为状态码。
type Code string

const (
	CodeInvalid            Code = "INVALID_ARGUMENT"    // 入参非法（如 start > end）
	CodeNotFound           Code = "NOT_FOUND"           // 车辆/客户/员工等不存在
	CodeAlreadyExists      Code = "ALREADY_EXISTS"      // 完全重复的区间记录
	CodePositionNotAllowed Code = "POSITION_NOT_ALLOWED" // 员工岗位无权执行该操作
	CodeNotAvailable       Code = "NOT_AVAILABLE"       // 车辆在该区间已被占用
	CodeUnauthorized       Code = "UNAUTHORIZED"        // 未通过鉴权
)

// Error 带错误码的业务错误。
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// New 创建业务错误。
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并打上错误码。
func Wrap(code Code, err error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// CodeOf 取出错误码；非业务错误返回空串。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Code
	}
	return ""
}

// Is 判断错误是否携带指定错误码。
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus 业务错误码到 HTTP 状态码的映射；未知错误按 500 处理。
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalid:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeNotAvailable:
		return http.StatusConflict
	case CodePositionNotAllowed:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
