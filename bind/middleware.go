package bind

import (
	"context"

	"github.com/google/uuid"
)

type QueryContext struct {
	// Type 声明查询类型 即 EXEC, ROW 和 SCALAR
	Type Variant

	// ID 每次执行都不一样, 用来把日志, 指标和链路串起来
	ID uuid.UUID

	// Source 使用的时候, 大多数情况下你需要转换到具体的类型才能篡改查询
	// 篡改需要在第一次调用 Descriptor 之前完成
	Source Source

	binder *Binder
	desc   *Descriptor
	err    error
}

// Descriptor 生成的结果会被缓存, 中间件和最终执行看到的是同一份
func (qc *QueryContext) Descriptor() (*Descriptor, error) {
	if qc.desc == nil && qc.err == nil {
		qc.desc, qc.err = qc.binder.Generate(qc.Source)
	}
	return qc.desc, qc.err
}

// Dialect 生成 SQL 用的方言
func (qc *QueryContext) Dialect() Dialect {
	return qc.binder.Dialect()
}

type Middleware func(next Handler) Handler

type Handler func(ctx context.Context, qc *QueryContext) *QueryResult

type QueryResult struct {
	// Result 在不同的查询里面, 类型是不同的
	// QueryAs.Get 里面, 这会是单个结果
	// QueryAs.GetMulti, QueryScalar.All 里面, 这会是一个切片
	// QueryScalar.One 里面是单个值
	// Query.Exec 里面, 它是 sql.Result
	Result any
	Err    error
}
