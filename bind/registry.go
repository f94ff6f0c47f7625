package bind

import (
	"database/sql"
	"math"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
)

var (
	typedType = reflect.TypeOf((*Typed)(nil)).Elem()
	timeType  = reflect.TypeOf(time.Time{})
)

// TypeRegistry 在运行期给参数打上 SQL 类型标记
// Source 产出的参数都是 any, 编译期约束不到, 只能在这里兜底
type TypeRegistry struct {
	// 用 reflect.Type 作为 key, 同名但不同包的类型也能区分开
	types map[reflect.Type]SQLType
	lock  sync.RWMutex
}

func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		types: make(map[reflect.Type]SQLType, 16),
	}
	r.Register(sql.NullString{}, TypeText)
	r.Register(sql.NullInt64{}, TypeInteger)
	r.Register(sql.NullInt32{}, TypeInteger)
	r.Register(sql.NullInt16{}, TypeInteger)
	r.Register(sql.NullByte{}, TypeInteger)
	r.Register(sql.NullFloat64{}, TypeFloat)
	r.Register(sql.NullBool{}, TypeBool)
	r.Register(sql.NullTime{}, TypeTime)
	// uuid.UUID 的 Value 返回字符串
	r.Register(uuid.UUID{}, TypeText)
	return r
}

// Register 登记一个类型, sample 是该类型的任意一个值
// 登记过的类型原样交给驱动, 所以它应该是驱动认识的类型, 或者实现了 driver.Valuer
func (r *TypeRegistry) Register(sample any, t SQLType) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.types[reflect.TypeOf(sample)] = t
}

func (r *TypeRegistry) lookup(typ reflect.Type) (SQLType, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	t, ok := r.types[typ]
	return t, ok
}

// Resolve 返回值的 SQL 类型和归一化之后的值
func (r *TypeRegistry) Resolve(val any) (SQLType, any, error) {
	if val == nil {
		return TypeNull, nil, nil
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		// nil 指针就是带了元素类型的 NULL
		t, err := r.typeOf(rv.Type().Elem())
		if err != nil {
			return TypeNull, nil, err
		}
		return t, nullValue{typ: t}, nil
	}
	if tv, ok := val.(Typed); ok {
		return tv.SQLType(), tv, nil
	}
	return r.resolve(rv)
}

func (r *TypeRegistry) resolve(rv reflect.Value) (SQLType, any, error) {
	typ := rv.Type()
	if t, ok := r.lookup(typ); ok {
		return t, rv.Interface(), nil
	}
	if typ.Kind() == reflect.Pointer {
		return r.Resolve(rv.Elem().Interface())
	}
	return normalize(rv)
}

// typeOf 只看类型不看值, 用于 nil 指针
func (r *TypeRegistry) typeOf(typ reflect.Type) (SQLType, error) {
	if t, ok := r.lookup(typ); ok {
		return t, nil
	}
	if typ.Kind() == reflect.Pointer {
		return r.typeOf(typ.Elem())
	}
	// 拿不到值, 只能用零值问一下类型
	if typ.Implements(typedType) {
		return reflect.Zero(typ).Interface().(Typed).SQLType(), nil
	}
	if reflect.PointerTo(typ).Implements(typedType) {
		return reflect.New(typ).Interface().(Typed).SQLType(), nil
	}
	t, ok := kindType(typ)
	if !ok {
		return TypeNull, errs.NewErrUnsupportedType(reflect.Zero(typ).Interface())
	}
	return t, nil
}

func kindType(typ reflect.Type) (SQLType, bool) {
	if typ == timeType {
		return TypeTime, true
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger, true
	case reflect.Float32, reflect.Float64:
		return TypeFloat, true
	case reflect.String:
		return TypeText, true
	case reflect.Bool:
		return TypeBool, true
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return TypeBlob, true
		}
	}
	return TypeNull, false
}

// normalize 把底层类型转成驱动认识的基础类型
// 如 type Age int8 会变成 int64
func normalize(rv reflect.Value) (SQLType, any, error) {
	typ := rv.Type()
	if typ == timeType {
		return TypeTime, rv.Interface(), nil
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return TypeInteger, rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return TypeInteger, nil, errs.NewErrValueOverflow(u)
		}
		return TypeInteger, int64(u), nil
	case reflect.Float32, reflect.Float64:
		return TypeFloat, rv.Float(), nil
	case reflect.String:
		return TypeText, rv.String(), nil
	case reflect.Bool:
		return TypeBool, rv.Bool(), nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return TypeBlob, rv.Bytes(), nil
		}
	}
	return TypeNull, nil, errs.NewErrUnsupportedType(rv.Interface())
}

// matches 判断值的实际类型是否和声明的类型一致
// NULL 可以出现在任何类型的位置上
func (r *TypeRegistry) matches(a Arg) error {
	t, _, err := r.Resolve(a.Value)
	if err != nil {
		return err
	}
	if a.Value == nil || t == a.Type {
		return nil
	}
	if nv, ok := a.Value.(nullValue); ok && (a.Type == nv.typ || nv.typ == TypeNull) {
		return nil
	}
	return errs.NewErrTypeMismatch(a.Type, t)
}
