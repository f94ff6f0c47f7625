// Package test 是用于辅助测试的包。仅限于内部使用
package test

import (
	"database/sql"

	"github.com/startdusk/go-sqlbind/bind"
)

// SimpleStruct 覆盖了能直接绑定的各种类型
type SimpleStruct struct {
	ID      int64
	Bool    bool
	Int     int
	Int8Ptr *int8
	Uint32  uint32

	Float64   float64
	ByteArray []byte
	String    string

	// 特殊类型
	NullStringPtr *sql.NullString
	JSONColumn    bind.JSON[User]
}

type User struct {
	Name string
}

func NewSimpleStruct(id int64) *SimpleStruct {
	return &SimpleStruct{
		ID:            id,
		Bool:          true,
		Int:           12,
		Int8Ptr:       ToPtr[int8](-8),
		Uint32:        32,
		Float64:       6.4,
		ByteArray:     []byte("hello"),
		String:        "world",
		NullStringPtr: &sql.NullString{String: "null string", Valid: true},
		JSONColumn: bind.JSON[User]{
			Val:   User{Name: "Tom"},
			Valid: true,
		},
	}
}

// InsertSimpleStruct 按列顺序绑定 SimpleStruct 的每一个字段
func InsertSimpleStruct(sess bind.Session, s *SimpleStruct) *bind.Query {
	q := bind.NewQuery(sess, "INSERT INTO `simple_struct`(`id`, `bool`, `int`, `int8_ptr`, `uint32`, "+
		"`float64`, `byte_array`, `string`, `null_string_ptr`, `json_column`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	q = bind.Bind(q, s.ID)
	q = bind.Bind(q, s.Bool)
	q = bind.Bind(q, s.Int)
	q = bind.BindNullable(q, s.Int8Ptr)
	q = bind.Bind(q, s.Uint32)
	q = bind.Bind(q, s.Float64)
	q = bind.Bind(q, s.ByteArray)
	q = bind.Bind(q, s.String)
	var str *string
	if s.NullStringPtr != nil && s.NullStringPtr.Valid {
		str = &s.NullStringPtr.String
	}
	q = bind.BindNullable(q, str)
	q = bind.BindTyped(q, s.JSONColumn)
	return q
}

func ToPtr[T any](t T) *T {
	return &t
}
