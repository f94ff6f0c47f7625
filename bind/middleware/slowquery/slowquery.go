package slowquery

import (
	"context"
	"log"
	"time"

	"github.com/startdusk/go-sqlbind/bind"
)

type MiddlewareBuilder struct {
	// 慢查询阈值, 需要考虑实际情况, 如 100ms
	threshold time.Duration
	logFunc   func(query string, args []any, duration time.Duration)
}

func NewMiddlewareBuilder(threshold time.Duration) *MiddlewareBuilder {
	return &MiddlewareBuilder{
		threshold: threshold,
		logFunc: func(query string, args []any, duration time.Duration) {
			log.Printf("slow sql: %s, duration: %s", query, duration)
		},
	}
}

// LogFunc 参数里可能有敏感数据, 打不打印由 fn 自己决定
func (m *MiddlewareBuilder) LogFunc(fn func(query string, args []any, duration time.Duration)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

func (m *MiddlewareBuilder) Build() bind.Middleware {
	return func(next bind.Handler) bind.Handler {
		return func(ctx context.Context, qc *bind.QueryContext) *bind.QueryResult {
			startTime := time.Now()
			defer func() {
				duration := time.Since(startTime)
				if duration <= m.threshold {
					return
				}
				// SQL 都没构造出来的话就不记录了
				d, err := qc.Descriptor()
				if err == nil {
					m.logFunc(d.SQL, d.Values(), duration)
				}
			}()
			return next(ctx, qc)
		}
	}
}
