package errors

import (
	stderrors "errors"

	"signalhub/pkg/errors/ecode"
)

// 携带业务错误码的error，handler层通过DecodeErr还原错误码和提示

type withCode struct {
	code  int
	msg   string
	cause error
}

func (e *withCode) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return ecode.Text(e.code)
}

func (e *withCode) Unwrap() error {
	return e.cause
}

// Code 返回错误携带的业务错误码
func (e *withCode) Code() int {
	return e.code
}

// New 创建一个不带错误码的error，等价于标准库errors.New
func New(msg string) error {
	return stderrors.New(msg)
}

// WithCode 创建一个携带错误码的error
func WithCode(code int, msg string) error {
	if msg == "" {
		msg = ecode.Text(code)
	}
	return &withCode{code: code, msg: msg}
}

// Wrap 包装底层error并附加错误码和提示
func Wrap(err error, code int, msg string) error {
	if err == nil {
		return nil
	}
	if msg == "" {
		msg = ecode.Text(code)
	}
	return &withCode{code: code, msg: msg, cause: err}
}

// DecodeErr 解出错误码和提示信息
// err为nil时返回Success，未携带错误码的error归入Unknown
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var coded *withCode
	if stderrors.As(err, &coded) {
		return coded.code, coded.Error()
	}
	return ecode.Unknown, err.Error()
}

// Is 透传标准库errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As 透传标准库errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
