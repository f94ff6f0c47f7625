package safedml

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/startdusk/go-sqlbind/bind"
)

var (
	ErrNoWhere      = errors.New("safedml: 禁止执行没有 WHERE 的 UPDATE 或 DELETE 语句")
	ErrDeleteDenied = errors.New("safedml: 禁止使用 DELETE 语句")
)

// MiddlewareBuilder 拦截危险的 DML, 只检查 EXEC 类型的查询
type MiddlewareBuilder struct {
	denyDelete bool
}

func NewMiddlewareBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{}
}

// DenyDelete 直接禁用 DELETE 语句
func (m *MiddlewareBuilder) DenyDelete() *MiddlewareBuilder {
	m.denyDelete = true
	return m
}

func (m *MiddlewareBuilder) Build() bind.Middleware {
	return func(next bind.Handler) bind.Handler {
		return func(ctx context.Context, qc *bind.QueryContext) *bind.QueryResult {
			if qc.Type != bind.VariantExec {
				return next(ctx, qc)
			}
			d, err := qc.Descriptor()
			if err != nil {
				return &bind.QueryResult{
					Err: err,
				}
			}
			if err := m.check(d.SQL, qc.Dialect()); err != nil {
				return &bind.QueryResult{
					Err: err,
				}
			}
			return next(ctx, qc)
		}
	}
}

// check 只看关键字, 字符串和注释里的 WHERE 不算
func (m *MiddlewareBuilder) check(query string, d bind.Dialect) error {
	code, err := bind.StripLiterals(query, d)
	if err != nil {
		return err
	}
	words := strings.FieldsFunc(strings.ToUpper(code), func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return nil
	}
	switch words[0] {
	case "DELETE":
		if m.denyDelete {
			return ErrDeleteDenied
		}
	case "UPDATE":
	default:
		return nil
	}
	for _, w := range words[1:] {
		if w == "WHERE" {
			return nil
		}
	}
	return ErrNoWhere
}
