package bind

import (
	"database/sql"

	"github.com/startdusk/go-sqlbind/bind/internal/valuer"
	"github.com/startdusk/go-sqlbind/bind/model"
)

var (
	_ Session = &DB{}
	_ Session = &Conn{}
)

// Session 是查询对象执行的地方
type Session interface {
	getCore() core
	executor() Executor
}

type core struct {
	binder  *Binder
	creator valuer.Creator
	r       model.Registry

	mdls []Middleware
}

type DBOption func(db *DB)

type DB struct {
	core
	db   *sql.DB
	exec Executor

	// 下面这些只在 OpenDB 里用来构造 binder
	dialect   Dialect
	types     *TypeRegistry
	cacheSize int
	classify  ErrorClassifier
}

func (db *DB) getCore() core {
	return db.core
}

func (db *DB) executor() Executor {
	return db.exec
}

// Binder 用于不经过查询对象, 直接生成 Descriptor
func (db *DB) Binder() *Binder {
	return db.binder
}

// DB 返回底层的 *sql.DB
func (db *DB) DB() *sql.DB {
	return db.db
}

// With 在调用方自己管理的 *sql.Tx 或 *sql.Conn 上执行查询
// 事务的开启和提交都由调用方负责
func (db *DB) With(p Preparer) *Conn {
	return &Conn{
		core: db.core,
		exec: NewSQLExecutor(p, db.types, db.classify),
	}
}

func (db *DB) Close() error {
	return db.db.Close()
}

// Conn 和 DB 共享配置, 只是换了执行的地方
type Conn struct {
	core
	exec Executor
}

func (c *Conn) getCore() core {
	return c.core
}

func (c *Conn) executor() Executor {
	return c.exec
}

func Open(driver string, dataSourceName string, opts ...DBOption) (*DB, error) {
	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, err
	}
	return OpenDB(db, opts...)
}

func OpenDB(db *sql.DB, opts ...DBOption) (*DB, error) {
	newDB := &DB{
		core: core{
			r:       model.NewRegistry(),
			creator: valuer.NewUnsafeValue,
		},
		db:      db,
		dialect: DialectMySQL,
	}

	for _, opt := range opts {
		opt(newDB)
	}

	if newDB.types == nil {
		newDB.types = NewTypeRegistry()
	}
	newDB.binder = NewBinder(
		BinderWithDialect(newDB.dialect),
		BinderWithTypeRegistry(newDB.types),
		BinderWithTemplateCacheSize(newDB.cacheSize),
	)
	if newDB.exec == nil {
		newDB.exec = NewSQLExecutor(db, newDB.types, newDB.classify)
	}
	return newDB, nil
}

func MustOpenDB(db *sql.DB, opts ...DBOption) *DB {
	newDB, err := OpenDB(db, opts...)
	if err != nil {
		panic(err)
	}
	return newDB
}

func MustOpen(driver string, dataSourceName string, opts ...DBOption) *DB {
	newDB, err := Open(driver, dataSourceName, opts...)
	if err != nil {
		panic(err)
	}
	return newDB
}

func DBUseReflect() DBOption {
	return func(db *DB) {
		db.creator = valuer.NewReflectValue
	}
}

func DBWithRegistry(r model.Registry) DBOption {
	return func(db *DB) {
		db.r = r
	}
}

func DBWithDialect(dialect Dialect) DBOption {
	return func(db *DB) {
		db.dialect = dialect
	}
}

func DBWithMiddlewares(mdls ...Middleware) DBOption {
	return func(db *DB) {
		db.mdls = append(db.mdls, mdls...)
	}
}

func DBWithTypeRegistry(r *TypeRegistry) DBOption {
	return func(db *DB) {
		db.types = r
	}
}

func DBWithTemplateCacheSize(size int) DBOption {
	return func(db *DB) {
		db.cacheSize = size
	}
}

// DBWithErrorClassifier 驱动执行时拒绝的参数错误会被包装成 BindError
func DBWithErrorClassifier(classify ErrorClassifier) DBOption {
	return func(db *DB) {
		db.classify = classify
	}
}

// DBWithExecutor 替换默认的 database/sql 执行器, 主要用于测试
func DBWithExecutor(exec Executor) DBOption {
	return func(db *DB) {
		db.exec = exec
	}
}
