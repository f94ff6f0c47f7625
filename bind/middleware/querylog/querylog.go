package querylog

import (
	"context"
	"log"

	"github.com/startdusk/go-sqlbind/bind"
)

type MiddlewareBuilder struct {
	// 参数里可能有敏感数据, 所以默认不打印参数
	logArgs bool
	logFunc func(query string, args []any)
}

func NewMiddlewareBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logFunc: func(query string, args []any) {
			log.Printf("sql: %s, args: %v", query, args)
		},
	}
}

func (m *MiddlewareBuilder) LogFunc(fn func(query string, args []any)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

// LogArgs 打印参数, 只建议在开发环境打开
func (m *MiddlewareBuilder) LogArgs() *MiddlewareBuilder {
	m.logArgs = true
	return m
}

func (m *MiddlewareBuilder) Build() bind.Middleware {
	return func(next bind.Handler) bind.Handler {
		return func(ctx context.Context, qc *bind.QueryContext) *bind.QueryResult {
			d, err := qc.Descriptor()
			if err != nil {
				return &bind.QueryResult{
					Err: err,
				}
			}
			var args []any
			if m.logArgs {
				args = d.Values()
			}
			m.logFunc(d.SQL, args)
			return next(ctx, qc)
		}
	}
}
