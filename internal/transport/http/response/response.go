package response

import (
	"errors"

	"go-commerce-backend/internal/domain"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FromError maps a classified data-layer error onto the envelope. Callers
// always get the five-way taxonomy, never a raw driver message.
func FromError(err error) Resp {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return Error(CodeNotFound, "resource not found")
	case errors.Is(err, domain.ErrConflict):
		return Error(CodeConflict, "duplicate resource")
	case errors.Is(err, domain.ErrInvalidReference):
		return Error(CodeBadRequest, "referenced resource does not exist")
	case errors.Is(err, domain.ErrInvalidInput):
		return Error(CodeBadRequest, "invalid input")
	default:
		return Error(CodeServerError, "internal error")
	}
}
