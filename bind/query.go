package bind

import (
	"context"
	"database/sql"
)

var (
	_ BindingTo[*Query]              = &Query{}
	_ BindingTo[*QueryAs[struct{}]]  = &QueryAs[struct{}]{}
	_ BindingTo[*QueryScalar[int64]] = &QueryScalar[int64]{}
	_ Source                         = &Query{}
	_ Source                         = &QueryAs[struct{}]{}
	_ Source                         = &QueryScalar[int64]{}
)

// statement 是三种查询对象共享的部分
type statement struct {
	sess Session
	sql  string
	args []Arg
}

// with 总是复制参数列表, 绑定之后的新对象和原来的对象互不影响
func (s statement) with(a Arg) statement {
	args := make([]Arg, len(s.args), len(s.args)+1)
	copy(args, s.args)
	a.Slot = len(args)
	s.args = append(args, a)
	return s
}

func (s statement) Build() (string, []any, error) {
	if len(s.args) == 0 {
		return s.sql, nil, nil
	}
	vals := make([]any, 0, len(s.args))
	for _, a := range s.args {
		if a.Name != "" {
			vals = append(vals, sql.Named(a.Name, a.Value))
			continue
		}
		vals = append(vals, a.Value)
	}
	return s.sql, vals, nil
}

// Args 返回已经绑定的参数, 调用方不应该修改
func (s statement) Args() []Arg {
	return s.args
}

// Query 用于没有返回行的语句, 即 INSERT, UPDATE, DELETE 等
type Query struct {
	statement
}

func NewQuery(sess Session, query string) *Query {
	return &Query{
		statement: statement{sess: sess, sql: query},
	}
}

func (q *Query) bindArg(a Arg) *Query {
	return &Query{statement: q.with(a)}
}

func (q *Query) Exec(ctx context.Context) Result {
	c := q.sess.getCore()
	res := run(ctx, c, &QueryContext{
		Type:   VariantExec,
		Source: q,
	}, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return execHandler(ctx, q.sess, qc)
	})
	var sqlRes sql.Result
	if val, ok := res.Result.(sql.Result); ok {
		sqlRes = val
	}
	return Result{res: sqlRes, err: res.Err}
}

// QueryAs 把每一行映射成 T, T 必须是结构体
type QueryAs[T any] struct {
	statement
}

func NewQueryAs[T any](sess Session, query string) *QueryAs[T] {
	return &QueryAs[T]{
		statement: statement{sess: sess, sql: query},
	}
}

func (q *QueryAs[T]) bindArg(a Arg) *QueryAs[T] {
	return &QueryAs[T]{statement: q.with(a)}
}

// Get 返回第一行, 没有数据时返回 ErrNoRows
func (q *QueryAs[T]) Get(ctx context.Context) (*T, error) {
	c := q.sess.getCore()
	m, err := c.r.Get(new(T))
	if err != nil {
		return nil, err
	}
	res := run(ctx, c, &QueryContext{
		Type:   VariantRow,
		Source: q,
	}, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getHandler[T](ctx, q.sess, c, m, qc)
	})
	var t *T
	if val, ok := res.Result.(*T); ok {
		t = val
	}
	return t, res.Err
}

// GetMulti 没有数据时返回空切片, 不返回错误
func (q *QueryAs[T]) GetMulti(ctx context.Context) ([]*T, error) {
	c := q.sess.getCore()
	m, err := c.r.Get(new(T))
	if err != nil {
		return nil, err
	}
	res := run(ctx, c, &QueryContext{
		Type:   VariantRow,
		Source: q,
	}, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getMultiHandler[T](ctx, q.sess, c, m, qc)
	})
	var ts []*T
	if val, ok := res.Result.([]*T); ok {
		ts = val
	}
	return ts, res.Err
}

// QueryScalar 只取第一列, 如 SELECT COUNT(*)
type QueryScalar[T any] struct {
	statement
}

func NewQueryScalar[T any](sess Session, query string) *QueryScalar[T] {
	return &QueryScalar[T]{
		statement: statement{sess: sess, sql: query},
	}
}

func (q *QueryScalar[T]) bindArg(a Arg) *QueryScalar[T] {
	return &QueryScalar[T]{statement: q.with(a)}
}

// One 返回第一行的第一列, 没有数据时返回 ErrNoRows
func (q *QueryScalar[T]) One(ctx context.Context) (T, error) {
	res := q.run(ctx, false)
	var t T
	if val, ok := res.Result.(T); ok {
		t = val
	}
	return t, res.Err
}

// All 返回每一行的第一列
func (q *QueryScalar[T]) All(ctx context.Context) ([]T, error) {
	res := q.run(ctx, true)
	var ts []T
	if val, ok := res.Result.([]T); ok {
		ts = val
	}
	return ts, res.Err
}

func (q *QueryScalar[T]) run(ctx context.Context, all bool) *QueryResult {
	return run(ctx, q.sess.getCore(), &QueryContext{
		Type:   VariantScalar,
		Source: q,
	}, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return scalarHandler[T](ctx, q.sess, qc, all)
	})
}

// Result 包装 sql.Result, 把错误一起带出来
type Result struct {
	res sql.Result
	err error
}

func (r Result) Err() error {
	return r.err
}

func (r Result) LastInsertId() (int64, error) {
	if r.err != nil || r.res == nil {
		return 0, r.err
	}
	return r.res.LastInsertId()
}

func (r Result) RowsAffected() (int64, error) {
	if r.err != nil || r.res == nil {
		return 0, r.err
	}
	return r.res.RowsAffected()
}
