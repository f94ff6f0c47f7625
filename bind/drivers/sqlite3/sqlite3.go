// Package sqlite3 把 mattn/go-sqlite3 接入 bind
package sqlite3

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/startdusk/go-sqlbind/bind"
)

var _ bind.ErrorClassifier = Classify

// Classify 判断 SQLite 返回的错误是不是参数引起的
func Classify(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code {
	case sqlite3.ErrMismatch, sqlite3.ErrConstraint, sqlite3.ErrRange, sqlite3.ErrTooBig:
		return true
	}
	return false
}

// Open 打开 SQLite 数据库, 默认使用 SQLite 方言和 Classify
func Open(dsn string, opts ...bind.DBOption) (*bind.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	defaults := []bind.DBOption{
		bind.DBWithDialect(bind.DialectSQLite),
		bind.DBWithErrorClassifier(Classify),
	}
	return bind.OpenDB(db, append(defaults, opts...)...)
}
