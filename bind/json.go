package bind

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

var _ Typed = JSON[int]{}

// JSON 把 Val 序列化成 JSON 文本存储
// Valid 为 false 时代表 NULL
type JSON[T any] struct {
	Val   T
	Valid bool
}

func (j JSON[T]) SQLType() SQLType {
	return TypeText
}

func (j JSON[T]) Value() (driver.Value, error) {
	if !j.Valid {
		return nil, nil
	}
	bs, err := json.Marshal(j.Val)
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}

func (j *JSON[T]) Scan(src any) error {
	var bs []byte
	switch data := src.(type) {
	case string:
		bs = []byte(data)
	case []byte:
		bs = data
	case nil:
		// 数据库里存的就是 NULL
		j.Valid = false
		return nil
	default:
		return fmt.Errorf("bind: JSON 不支持的类型 %T", src)
	}
	err := json.Unmarshal(bs, &j.Val)
	j.Valid = err == nil
	return err
}
