// Package mysql 把 go-sql-driver/mysql 接入 bind
package mysql

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/startdusk/go-sqlbind/bind"
)

// 这些错误码都是参数本身的问题, 换一组参数可能就成功了
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
var bindErrors = map[uint16]struct{}{
	1048: {}, // ER_BAD_NULL_ERROR
	1062: {}, // ER_DUP_ENTRY
	1210: {}, // ER_WRONG_ARGUMENTS
	1264: {}, // ER_WARN_DATA_OUT_OF_RANGE
	1292: {}, // ER_TRUNCATED_WRONG_VALUE
	1366: {}, // ER_TRUNCATED_WRONG_VALUE_FOR_FIELD
	1406: {}, // ER_DATA_TOO_LONG
	1451: {}, // ER_ROW_IS_REFERENCED_2
	1452: {}, // ER_NO_REFERENCED_ROW_2
}

var _ bind.ErrorClassifier = Classify

// Classify 判断 MySQL 返回的错误是不是参数引起的
func Classify(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	_, ok := bindErrors[me.Number]
	return ok
}

// Open 使用 mysql.Config 打开数据库, 默认使用 MySQL 方言和 Classify
// opts 里的同类选项会覆盖默认值
func Open(cfg *mysql.Config, opts ...bind.DBOption) (*bind.DB, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	defaults := []bind.DBOption{
		bind.DBWithDialect(bind.DialectMySQL),
		bind.DBWithErrorClassifier(Classify),
	}
	return bind.OpenDB(sql.OpenDB(connector), append(defaults, opts...)...)
}

// ParseDSN 方便从配置文件里的 DSN 得到 mysql.Config
func ParseDSN(dsn string) (*mysql.Config, error) {
	return mysql.ParseDSN(dsn)
}
