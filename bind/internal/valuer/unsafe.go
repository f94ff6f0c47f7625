package valuer

import (
	"database/sql"
	"reflect"
	"unsafe"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
	"github.com/startdusk/go-sqlbind/bind/model"
)

type unsafeValue struct {
	model *model.Model

	// 结构体的起始地址
	address unsafe.Pointer
}

var _ Creator = NewUnsafeValue

func NewUnsafeValue(model *model.Model, val any) Value {
	return unsafeValue{
		model:   model,
		address: reflect.ValueOf(val).UnsafePointer(),
	}
}

func (u unsafeValue) SetColumns(rows *sql.Rows) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	vals := make([]any, 0, len(columns))
	for _, colName := range columns {
		fd, ok := u.model.ColumnMap[colName]
		if !ok {
			return errs.NewErrUnknownColumn(colName)
		}
		// 字段地址 = 起始地址 + 偏移量
		fdAddress := unsafe.Pointer(uintptr(u.address) + fd.Offset)
		// 在字段地址上创建指针, scan 的时候直接写到结构体里
		vals = append(vals, reflect.NewAt(fd.Type, fdAddress).Interface())
	}
	return rows.Scan(vals...)
}
