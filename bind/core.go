package bind

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/startdusk/go-sqlbind/bind/internal/errs"
	"github.com/startdusk/go-sqlbind/bind/model"
)

func run(ctx context.Context, c core, qc *QueryContext, handler Handler) *QueryResult {
	qc.ID = uuid.New()
	qc.binder = c.binder
	root := handler
	for i := len(c.mdls) - 1; i >= 0; i-- {
		root = c.mdls[i](root)
	}
	return root(ctx, qc)
}

// prepare 生成, 准备, 绑定三步, 任何一步失败语句都不会被执行
func prepare(ctx context.Context, sess Session, qc *QueryContext) (Statement, error) {
	d, err := qc.Descriptor()
	if err != nil {
		return nil, err
	}
	stmt, err := sess.executor().Prepare(ctx, d.SQL)
	if err != nil {
		return nil, err
	}
	if err := qc.binder.MapValues(d, stmt); err != nil {
		_ = stmt.Close()
		return nil, err
	}
	return stmt, nil
}

func execHandler(ctx context.Context, sess Session, qc *QueryContext) *QueryResult {
	stmt, err := prepare(ctx, sess, qc)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer stmt.Close()
	res, err := stmt.Exec(ctx)
	return &QueryResult{Result: res, Err: err}
}

func query(ctx context.Context, sess Session, qc *QueryContext) (*sql.Rows, func(), error) {
	stmt, err := prepare(ctx, sess, qc)
	if err != nil {
		return nil, nil, err
	}
	rows, err := stmt.Query(ctx)
	if err != nil {
		_ = stmt.Close()
		return nil, nil, err
	}
	return rows, func() {
		_ = rows.Close()
		_ = stmt.Close()
	}, nil
}

func getHandler[T any](ctx context.Context, sess Session, c core, m *model.Model, qc *QueryContext) *QueryResult {
	rows, done, err := query(ctx, sess, qc)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer done()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return &QueryResult{Err: err}
		}
		// 返回要和 sql 包语义一致
		return &QueryResult{Err: errs.ErrNoRows}
	}

	entity := new(T)
	err = c.creator(m, entity).SetColumns(rows)
	return &QueryResult{Result: entity, Err: err}
}

func getMultiHandler[T any](ctx context.Context, sess Session, c core, m *model.Model, qc *QueryContext) *QueryResult {
	rows, done, err := query(ctx, sess, qc)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer done()

	res := make([]*T, 0, 8)
	for rows.Next() {
		entity := new(T)
		if err := c.creator(m, entity).SetColumns(rows); err != nil {
			return &QueryResult{Err: err}
		}
		res = append(res, entity)
	}
	return &QueryResult{Result: res, Err: rows.Err()}
}

func scalarHandler[T any](ctx context.Context, sess Session, qc *QueryContext, all bool) *QueryResult {
	rows, done, err := query(ctx, sess, qc)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer done()

	var res []T
	for rows.Next() {
		var val T
		if err := rows.Scan(&val); err != nil {
			return &QueryResult{Err: err}
		}
		if !all {
			return &QueryResult{Result: val}
		}
		res = append(res, val)
	}
	if err := rows.Err(); err != nil {
		return &QueryResult{Err: err}
	}
	if !all {
		return &QueryResult{Err: errs.ErrNoRows}
	}
	if res == nil {
		res = []T{}
	}
	return &QueryResult{Result: res}
}
