package bind

import (
	"context"
	"database/sql"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
)

// Preparer 是 *sql.DB, *sql.Tx 和 *sql.Conn 共有的方法
type Preparer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ErrorClassifier 判断驱动返回的错误是不是参数引起的
// 比如类型不匹配, 约束冲突
type ErrorClassifier func(err error) bool

var _ Executor = &sqlExecutor{}

type sqlExecutor struct {
	p        Preparer
	types    *TypeRegistry
	classify ErrorClassifier
}

// NewSQLExecutor 基于 database/sql 的 Executor
// 预编译交给驱动去做, 这里只负责按顺序收集参数
func NewSQLExecutor(p Preparer, types *TypeRegistry, classify ErrorClassifier) Executor {
	if types == nil {
		types = NewTypeRegistry()
	}
	return &sqlExecutor{
		p:        p,
		types:    types,
		classify: classify,
	}
}

func (e *sqlExecutor) Prepare(ctx context.Context, query string) (Statement, error) {
	return &sqlStatement{
		exec:  e,
		query: query,
	}, nil
}

type sqlStatement struct {
	exec  *sqlExecutor
	query string
	args  []any
}

func (s *sqlStatement) BindTo(arg Arg) error {
	if arg.Slot != len(s.args) {
		return errs.NewErrSlotOrder(len(s.args), arg.Slot)
	}
	if err := s.exec.types.matches(arg); err != nil {
		return err
	}
	if s.args == nil {
		// 很少有查询能够超过8个参数
		s.args = make([]any, 0, 8)
	}
	s.args = append(s.args, arg.Value)
	return nil
}

func (s *sqlStatement) Reset() {
	s.args = s.args[:0]
}

func (s *sqlStatement) Exec(ctx context.Context) (sql.Result, error) {
	res, err := s.exec.p.ExecContext(ctx, s.query, s.args...)
	return res, s.wrap(err)
}

func (s *sqlStatement) Query(ctx context.Context) (*sql.Rows, error) {
	rows, err := s.exec.p.QueryContext(ctx, s.query, s.args...)
	return rows, s.wrap(err)
}

func (s *sqlStatement) Close() error {
	s.args = nil
	return nil
}

// wrap 驱动在执行时才拒绝参数的话, 没法知道是哪一个参数
func (s *sqlStatement) wrap(err error) error {
	if err == nil || s.exec.classify == nil || !s.exec.classify(err) {
		return err
	}
	return &BindError{Slot: -1, Type: TypeNull, Err: err}
}
