package bind

import (
	"database/sql"
	"fmt"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
)

// Binder 把 Source 变成 Descriptor, 再把 Descriptor 绑定到 Statement 上
// Binder 本身没有状态, 解析缓存和类型注册中心都可以并发使用, 也不会影响结果
type Binder struct {
	dialect   Dialect
	types     *TypeRegistry
	cacheSize int
	templates *templateCache
}

type BinderOption func(b *Binder)

func NewBinder(opts ...BinderOption) *Binder {
	b := &Binder{
		dialect: DialectMySQL,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.types == nil {
		b.types = NewTypeRegistry()
	}
	b.templates = newTemplateCache(b.cacheSize, b.dialect.quoting())
	return b
}

func BinderWithDialect(d Dialect) BinderOption {
	return func(b *Binder) {
		b.dialect = d
	}
}

func BinderWithTypeRegistry(r *TypeRegistry) BinderOption {
	return func(b *Binder) {
		b.types = r
	}
}

func BinderWithTemplateCacheSize(size int) BinderOption {
	return func(b *Binder) {
		b.cacheSize = size
	}
}

func (b *Binder) Dialect() Dialect {
	return b.dialect
}

// Generate 生成 SQL 文本和有序的参数列表
// 同一个 Source 多次调用, 得到的结果完全一样
func (b *Binder) Generate(src Source) (*Descriptor, error) {
	query, vals, err := src.Build()
	if err != nil {
		return nil, newGenerationError(err)
	}
	tmpl, err := b.templates.get(query)
	if err != nil {
		return nil, newGenerationError(err)
	}
	ordered, names, err := arrange(tmpl, vals)
	if err != nil {
		return nil, newGenerationError(err)
	}

	args := make([]Arg, 0, len(ordered))
	for i, val := range ordered {
		t, v, err := b.types.Resolve(val)
		if err != nil {
			return nil, &BindError{Slot: i, Type: t, Err: err}
		}
		args = append(args, Arg{Slot: i, Name: names[i], Type: t, Value: v})
	}
	return &Descriptor{
		SQL:  tmpl.render(b.dialect),
		Args: args,
	}, nil
}

// arrange 按占位符的顺序排列参数
// 占位符和参数对不上是编程错误, 直接报错, 不截断也不补齐
func arrange(tmpl *template, vals []any) ([]any, []string, error) {
	var positional []any
	var named map[string]any
	for _, val := range vals {
		if na, ok := val.(sql.NamedArg); ok {
			if named == nil {
				named = make(map[string]any, len(vals))
			}
			if _, ok := named[na.Name]; ok {
				return nil, nil, errs.NewErrDuplicateParam(na.Name)
			}
			named[na.Name] = na.Value
			continue
		}
		positional = append(positional, val)
	}
	if len(named) > 0 && len(positional) > 0 {
		return nil, nil, errs.NewErrPlaceholderMismatch(tmpl.count, len(vals))
	}

	// 没用到的命名参数直接忽略
	switch tmpl.style {
	case styleNamed:
		if len(positional) > 0 {
			return nil, nil, errs.NewErrPlaceholderMismatch(tmpl.count, len(positional))
		}
		ordered := make([]any, 0, len(tmpl.names))
		for _, name := range tmpl.names {
			val, ok := named[name]
			if !ok {
				return nil, nil, errs.NewErrUnknownParam(name)
			}
			ordered = append(ordered, val)
		}
		return ordered, tmpl.names, nil
	case styleNone:
		if len(positional) > 0 {
			return nil, nil, errs.NewErrPlaceholderMismatch(0, len(positional))
		}
		return nil, nil, nil
	default:
		if len(named) > 0 || tmpl.count != len(positional) {
			return nil, nil, errs.NewErrPlaceholderMismatch(tmpl.count, len(vals))
		}
		return positional, make([]string, len(positional)), nil
	}
}

// MapValues 按顺序把参数绑定到 stmt 上
// 要么全部绑定成功, 要么 stmt 被重置, 不会留下绑了一半的语句
func (b *Binder) MapValues(d *Descriptor, stmt Statement) error {
	if err := b.validate(d); err != nil {
		return err
	}
	for _, a := range d.Args {
		if err := stmt.BindTo(a); err != nil {
			stmt.Reset()
			return &BindError{Slot: a.Slot, Type: a.Type, Err: err}
		}
	}
	return nil
}

// validate 在碰 stmt 之前检查完所有能检查的东西
func (b *Binder) validate(d *Descriptor) error {
	if d == nil {
		return newGenerationError(errs.NewErrMalformedDescriptor("descriptor 为 nil"))
	}
	tmpl, err := b.templates.get(d.SQL)
	if err != nil {
		return newGenerationError(err)
	}
	if tmpl.count != len(d.Args) {
		return newGenerationError(errs.NewErrMalformedDescriptor(
			fmt.Sprintf("%d 个占位符, %d 个参数", tmpl.count, len(d.Args))))
	}
	for i, a := range d.Args {
		if a.Slot != i {
			return newGenerationError(errs.NewErrMalformedDescriptor(
				fmt.Sprintf("第 %d 个参数的位置是 %d", i, a.Slot)))
		}
		if err := b.types.matches(a); err != nil {
			return &BindError{Slot: i, Type: a.Type, Err: err}
		}
	}
	return nil
}
