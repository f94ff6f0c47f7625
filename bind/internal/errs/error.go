package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPointerOnly   = errors.New("bind: 只支持指向结构体的一级指针")
	ErrNoRows        = errors.New("bind: 没有数据")
	ErrUnknownField  = errors.New("bind: 未知字段")
	ErrUnknownColumn = errors.New("bind: 未知数据库列名")

	// 生成阶段
	ErrMalformedTemplate   = errors.New("bind: 非法的SQL模板")
	ErrPlaceholderMismatch = errors.New("bind: 占位符数量与参数数量不一致")
	ErrUnknownParam        = errors.New("bind: 无法解析的命名参数")
	ErrMalformedDescriptor = errors.New("bind: 非法的查询描述")

	// 绑定阶段
	ErrUnsupportedType = errors.New("bind: 不支持的参数类型")
	ErrValueOverflow   = errors.New("bind: 整数超出 int64 范围")
	ErrTypeMismatch    = errors.New("bind: 参数类型与声明类型不一致")
	ErrSlotOrder       = errors.New("bind: 参数绑定顺序错误")
)

func NewErrUnknownField(name string) error {
	return fmt.Errorf("%w %s", ErrUnknownField, name)
}

func NewErrUnknownColumn(name string) error {
	return fmt.Errorf("%w %s", ErrUnknownColumn, name)
}

func NewErrInvalidTagContent(pair string) error {
	return fmt.Errorf("bind: 非法标签值 %s", pair)
}

// NewErrMalformedTemplate 附带出错位置, 方便定位模板问题
func NewErrMalformedTemplate(pos int, reason string) error {
	return fmt.Errorf("%w: 位置 %d, %s", ErrMalformedTemplate, pos, reason)
}

func NewErrPlaceholderMismatch(placeholders, args int) error {
	return fmt.Errorf("%w: %d 个占位符, %d 个参数", ErrPlaceholderMismatch, placeholders, args)
}

// NewErrDuplicateParam 同一个名字传了两次, 不知道该用哪个
func NewErrDuplicateParam(name string) error {
	return fmt.Errorf("%w: 命名参数 %s 重复", ErrPlaceholderMismatch, name)
}

func NewErrUnknownParam(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

func NewErrMalformedDescriptor(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedDescriptor, reason)
}

func NewErrUnsupportedType(val any) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedType, val)
}

func NewErrValueOverflow(val any) error {
	return fmt.Errorf("%w: %v", ErrValueOverflow, val)
}

func NewErrTypeMismatch(declared, actual fmt.Stringer) error {
	return fmt.Errorf("%w: 声明 %s, 实际 %s", ErrTypeMismatch, declared, actual)
}

func NewErrSlotOrder(want, got int) error {
	return fmt.Errorf("%w: 期望位置 %d, 实际位置 %d", ErrSlotOrder, want, got)
}
