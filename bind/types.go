package bind

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sort"
	"time"
)

// SQLType 是参数在数据库侧的类型标记
type SQLType uint8

const (
	TypeNull SQLType = iota
	TypeInteger
	TypeFloat
	TypeText
	TypeBlob
	TypeBool
	TypeTime
)

func (t SQLType) String() string {
	switch t {
	case TypeNull:
		return "NULL"
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeText:
		return "TEXT"
	case TypeBlob:
		return "BLOB"
	case TypeBool:
		return "BOOL"
	case TypeTime:
		return "TIME"
	}
	return "UNKNOWN"
}

// Scalar 是编译期就能确定可以绑定的类型集合
// 整数统一按 int64 绑定, 所以这里不包含 uint 和 uint64, 它们可能溢出
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 |
		~float32 | ~float64 |
		~string | ~[]byte | ~bool |
		time.Time
}

// Typed 是自定义类型参与绑定的方式: 自己负责编码, 并声明数据库类型
type Typed interface {
	driver.Valuer
	SQLType() SQLType
}

// Arg 是一次绑定操作, 记录了占位符位置和值
type Arg struct {
	// Slot 从 0 开始, 和生成的 SQL 里占位符的出现顺序一一对应
	Slot int
	// Name 命名参数的名字, 位置参数为空
	Name  string
	Type  SQLType
	Value any
}

// Descriptor 是 Generate 的产物: SQL 文本加上有序的绑定操作
// 构造之后就不应该再修改
type Descriptor struct {
	SQL  string
	Args []Arg
}

// Values 按顺序返回所有参数值, 可以直接交给 database/sql
func (d *Descriptor) Values() []any {
	if len(d.Args) == 0 {
		return nil
	}
	vals := make([]any, 0, len(d.Args))
	for _, a := range d.Args {
		vals = append(vals, a.Value)
	}
	return vals
}

// Source 代表能够产出 SQL 文本和参数的领域对象
// 命名参数使用 sql.Named 表达
type Source interface {
	Build() (string, []any, error)
}

// Variant 区分查询返回什么, 和绑定无关
type Variant uint8

const (
	VariantExec Variant = iota
	VariantRow
	VariantScalar
)

func (v Variant) String() string {
	switch v {
	case VariantExec:
		return "EXEC"
	case VariantRow:
		return "ROW"
	case VariantScalar:
		return "SCALAR"
	}
	return "UNKNOWN"
}

// Executor 负责准备语句, 由数据库驱动一侧实现
//
//go:generate mockgen -destination=mocks/executor.gen.go -package=mocks github.com/startdusk/go-sqlbind/bind Executor,Statement
type Executor interface {
	Prepare(ctx context.Context, query string) (Statement, error)
}

// Statement 是准备好的语句, 参数必须按 Slot 顺序绑定
type Statement interface {
	BindTo(arg Arg) error
	// Reset 丢弃所有已经绑定的参数
	Reset()
	Exec(ctx context.Context) (sql.Result, error)
	Query(ctx context.Context) (*sql.Rows, error)
	Close() error
}

type nullValue struct {
	typ SQLType
}

// Null 返回一个带类型的 NULL
func Null(t SQLType) Typed {
	return nullValue{typ: t}
}

func (n nullValue) Value() (driver.Value, error) {
	return nil, nil
}

func (n nullValue) SQLType() SQLType {
	return n.typ
}

type rawSource struct {
	sql  string
	args []any
}

// Raw 直接使用用户的 SQL 和参数, 用户应该保证它的正确性
func Raw(query string, args ...any) Source {
	return rawSource{sql: query, args: args}
}

func (r rawSource) Build() (string, []any, error) {
	return r.sql, r.args, nil
}

type namedSource struct {
	sql    string
	params map[string]any
}

// Named 使用 :name 风格的命名参数
func Named(query string, params map[string]any) Source {
	return namedSource{sql: query, params: params}
}

func (n namedSource) Build() (string, []any, error) {
	if len(n.params) == 0 {
		return n.sql, nil, nil
	}
	names := make([]string, 0, len(n.params))
	for name := range n.params {
		names = append(names, name)
	}
	// map 遍历无序, 排序之后保证 Build 的结果稳定
	sort.Strings(names)
	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, sql.Named(name, n.params[name]))
	}
	return n.sql, args, nil
}
