package model

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
)

const (
	tagName      = "bind"
	tagKeyColumn = "column"
)

// Registry 代表元数据的注册中心
type Registry interface {
	Get(val any) (*Model, error)
	Register(val any, opts ...Option) (*Model, error)
}

// Model 记录结构体字段和结果列之间的映射, 用于把行映射成结构体
type Model struct {
	// Go 字段名 => 字段
	FieldMap map[string]*Field
	// 列名 => 字段
	ColumnMap map[string]*Field
}

type Field struct {
	ColName string
	GoName  string
	Type    reflect.Type
	// 字段相对于结构体起始地址的偏移量
	Offset uintptr
}

type Option func(m *Model) error

// WithColumnName 修改某个字段对应的列名
func WithColumnName(field string, colName string) Option {
	return func(m *Model) error {
		fd, ok := m.FieldMap[field]
		if !ok {
			return errs.NewErrUnknownField(field)
		}
		delete(m.ColumnMap, fd.ColName)
		fd.ColName = colName
		m.ColumnMap[colName] = fd
		return nil
	}
}

type registry struct {
	// 用 reflect.Type 作为 key
	// 因为会有同名但不同包的结构体, 如 buyer.User 和 seller.User
	models map[reflect.Type]*Model

	// 使用读写锁加 double check, 避免 sync.Map 的重复创建问题
	lock sync.RWMutex
}

func NewRegistry() Registry {
	return &registry{
		models: make(map[reflect.Type]*Model, 64),
	}
}

func (r *registry) Get(val any) (*Model, error) {
	typ := reflect.TypeOf(val)
	r.lock.RLock()
	m, ok := r.models[typ]
	r.lock.RUnlock()
	if ok {
		return m, nil
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	// double check, 保证不重复创建
	m, ok = r.models[typ]
	if ok {
		return m, nil
	}
	m, err := parseModel(val)
	if err != nil {
		return nil, err
	}
	r.models[typ] = m
	return m, nil
}

// Register 显式注册, 会覆盖之前解析的结果
func (r *registry) Register(val any, opts ...Option) (*Model, error) {
	m, err := parseModel(val)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.models[reflect.TypeOf(val)] = m
	return m, nil
}

// 只支持指向结构体的一级指针
func parseModel(entity any) (*Model, error) {
	typ := reflect.TypeOf(entity)
	if typ == nil || typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		return nil, errs.ErrPointerOnly
	}
	typ = typ.Elem()
	numField := typ.NumField()
	fieldMap := make(map[string]*Field, numField)
	columnMap := make(map[string]*Field, numField)
	for i := 0; i < numField; i++ {
		fd := typ.Field(i)
		if !fd.IsExported() {
			continue
		}
		pair, err := parseTag(fd.Tag)
		if err != nil {
			return nil, err
		}
		colName := pair[tagKeyColumn]
		if colName == "-" {
			continue
		}
		if colName == "" {
			colName = underscoreName(fd.Name)
		}
		f := &Field{
			ColName: colName,
			GoName:  fd.Name,
			Type:    fd.Type,
			Offset:  fd.Offset,
		}
		fieldMap[fd.Name] = f
		columnMap[colName] = f
	}
	return &Model{
		FieldMap:  fieldMap,
		ColumnMap: columnMap,
	}, nil
}

func parseTag(tag reflect.StructTag) (map[string]string, error) {
	bindTag, ok := tag.Lookup(tagName)
	if !ok {
		return map[string]string{}, nil
	}
	pairs := strings.Split(bindTag, ",")
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		segs := strings.Split(pair, "=")
		if len(segs) != 2 {
			return nil, errs.NewErrInvalidTagContent(pair)
		}
		tags[segs[0]] = segs[1]
	}
	return tags, nil
}

// 驼峰转下划线, 连续的大写视为一个单词, 如 UserID => user_id
func underscoreName(name string) string {
	runes := []rune(name)
	var buf []rune
	for i, v := range runes {
		if unicode.IsUpper(v) {
			if i != 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				buf = append(buf, '_')
			}
			buf = append(buf, unicode.ToLower(v))
		} else {
			buf = append(buf, v)
		}
	}
	return string(buf)
}
