package bind

import (
	"strconv"
	"strings"
)

var (
	DialectMySQL      Dialect = &mysqlDialect{}
	DialectPostgreSQL Dialect = &postgreDialect{}
	DialectSQLite     Dialect = &sqliteDialect{}
)

// Dialect 决定占位符写成什么样
// MySQL 和 SQLite 是 ?
// PostgreSQL 是 $1, $2 ...
type Dialect interface {
	Name() string

	// placeholder 写入第 slot 个参数的占位符, slot 从 0 开始
	placeholder(sb *strings.Builder, slot int)

	// quoting 字符串字面量和注释的写法, 扫描占位符时要跳过它们
	quoting() quoting
}

// quoting 标准 SQL 之外的字面量写法
type quoting struct {
	// MySQL 字符串里可以用 \' 转义
	backslash bool
	// MySQL 的 # 注释
	hash bool
	// PostgreSQL 的 $$...$$ 和 $tag$...$tag$
	dollar bool
}

type standardSQL struct{}

func (d standardSQL) Name() string {
	return "standard"
}

func (d standardSQL) placeholder(sb *strings.Builder, slot int) {
	sb.WriteByte('?')
}

func (d standardSQL) quoting() quoting {
	return quoting{}
}

type mysqlDialect struct {
	standardSQL
}

func (d mysqlDialect) Name() string {
	return "mysql"
}

func (d mysqlDialect) quoting() quoting {
	return quoting{backslash: true, hash: true}
}

type sqliteDialect struct {
	standardSQL
}

func (d sqliteDialect) Name() string {
	return "sqlite3"
}

type postgreDialect struct {
	standardSQL
}

func (d postgreDialect) Name() string {
	return "postgres"
}

func (d postgreDialect) quoting() quoting {
	return quoting{dollar: true}
}

func (d postgreDialect) placeholder(sb *strings.Builder, slot int) {
	sb.WriteByte('$')
	sb.WriteString(strconv.Itoa(slot + 1))
}
