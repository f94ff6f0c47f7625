package bind

import (
	"reflect"
)

// BindingTo 是三种查询对象共同的绑定入口
// 每种查询对象只需要提供自己的 bindArg, 其余逻辑都在下面的泛型函数里
// 不同的查询对象返回的结果不同, 但绑定的语义是完全一致的
type BindingTo[Q any] interface {
	bindArg(a Arg) Q
}

// Bind 追加一个位置参数, 返回新的查询对象, 原来的对象不受影响
// 类型不对的值在编译期就被 Scalar 约束挡住了, 所以这里不会返回错误
func Bind[Q BindingTo[Q], V Scalar](q Q, v V) Q {
	return q.bindArg(scalarArg(v))
}

// BindTyped 追加一个自定义类型的参数
func BindTyped[Q BindingTo[Q], V Typed](q Q, v V) Q {
	return q.bindArg(Arg{Type: v.SQLType(), Value: v})
}

// BindNull 追加一个带类型的 NULL
func BindNull[Q BindingTo[Q]](q Q, t SQLType) Q {
	return q.bindArg(Arg{Type: t, Value: nullValue{typ: t}})
}

// BindNullable nil 指针会绑定为 V 对应类型的 NULL
func BindNullable[Q BindingTo[Q], V Scalar](q Q, v *V) Q {
	if v == nil {
		var zero V
		t := scalarArg(zero).Type
		return q.bindArg(Arg{Type: t, Value: nullValue{typ: t}})
	}
	return q.bindArg(scalarArg(*v))
}

// BindNamed 追加一个命名参数, 用于 :name 风格的 SQL
func BindNamed[Q BindingTo[Q], V Scalar](q Q, name string, v V) Q {
	a := scalarArg(v)
	a.Name = name
	return q.bindArg(a)
}

func scalarArg[V Scalar](v V) Arg {
	// Scalar 里的类型 normalize 都认识, 不会出错
	t, val, _ := normalize(reflect.ValueOf(v))
	return Arg{Type: t, Value: val}
}
