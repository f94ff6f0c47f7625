package valuer

import (
	"database/sql"
	"reflect"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
	"github.com/startdusk/go-sqlbind/bind/model"
)

type reflectValue struct {
	model *model.Model

	// val 对应泛型 T 的指针
	val any
}

// 确保类型变更我们能得到通知
var _ Creator = NewReflectValue

func NewReflectValue(model *model.Model, val any) Value {
	return reflectValue{
		model: model,
		val:   val,
	}
}

func (r reflectValue) SetColumns(rows *sql.Rows) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	// 按结果集的列顺序准备接收的值, 列的顺序和结构体字段的顺序没有关系
	vals := make([]any, 0, len(columns))
	valElems := make([]reflect.Value, 0, len(columns))
	for _, colName := range columns {
		fd, ok := r.model.ColumnMap[colName]
		if !ok {
			return errs.NewErrUnknownColumn(colName)
		}
		// fd.Type 是 int 的话, val 是 *int
		val := reflect.New(fd.Type)
		vals = append(vals, val.Interface())
		valElems = append(valElems, val.Elem())
	}

	if err := rows.Scan(vals...); err != nil {
		return err
	}

	valueElem := reflect.ValueOf(r.val).Elem()
	for i, colName := range columns {
		fd := r.model.ColumnMap[colName]
		valueElem.FieldByName(fd.GoName).Set(valElems[i])
	}
	return nil
}
