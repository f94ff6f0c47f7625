package bind

import (
	"fmt"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
)

// 通过桥接的方式将内部错误导出外部
var (
	ErrNoRows        = errs.ErrNoRows
	ErrPointerOnly   = errs.ErrPointerOnly
	ErrUnknownField  = errs.ErrUnknownField
	ErrUnknownColumn = errs.ErrUnknownColumn

	ErrMalformedTemplate   = errs.ErrMalformedTemplate
	ErrPlaceholderMismatch = errs.ErrPlaceholderMismatch
	ErrUnknownParam        = errs.ErrUnknownParam
	ErrMalformedDescriptor = errs.ErrMalformedDescriptor

	ErrUnsupportedType = errs.ErrUnsupportedType
	ErrValueOverflow   = errs.ErrValueOverflow
	ErrTypeMismatch    = errs.ErrTypeMismatch
	ErrSlotOrder       = errs.ErrSlotOrder
)

// GenerationError 代表 SQL 文本没能构造出来
// 调用方应该修正输入, 重试没有意义
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "bind: 生成SQL失败: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// BindError 代表某个参数没能绑定上去
// Slot 为 -1 时表示驱动在执行语句时才拒绝了参数, 没法定位到具体位置
type BindError struct {
	Slot int
	Type SQLType
	Err  error
}

func (e *BindError) Error() string {
	if e.Slot < 0 {
		return "bind: 绑定参数失败: " + e.Err.Error()
	}
	return fmt.Sprintf("bind: 绑定参数失败, 位置 %d(%s): %s", e.Slot, e.Type, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

func newGenerationError(err error) error {
	return &GenerationError{Err: err}
}
