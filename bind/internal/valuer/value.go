package valuer

import (
	"database/sql"

	"github.com/startdusk/go-sqlbind/bind/model"
)

// Value 是对结构体实例的内部抽象
type Value interface {
	// SetColumns 把当前行的数据写到结构体里
	SetColumns(rows *sql.Rows) error
}

type Creator func(model *model.Model, entity any) Value
