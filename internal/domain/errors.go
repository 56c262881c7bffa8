package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError 请求的记录不存在
type NotFoundError struct {
	Resource string
	ID       any
	// Err 可选的包级哨兵错误，供 errors.Is 匹配
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ValidationError 本地校验失败，操作不会执行，文档状态不变
type ValidationError struct {
	Message string
	// Details 例如缺失的必填字段标签
	Details []string
	Err     error
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransportError 剪贴板、提交等外部交互失败，可由用户重试
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Op + " failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorKind 错误分类
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindInternal   ErrorKind = "internal"
)

// KindOf 对错误链进行分类
func KindOf(err error) ErrorKind {
	var nf *NotFoundError
	var ve *ValidationError
	var te *TransportError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &te):
		return KindTransport
	default:
		return KindInternal
	}
}
