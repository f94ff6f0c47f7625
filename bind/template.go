package bind

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/startdusk/go-sqlbind/bind/internal/errs"
)

// 一个项目里不同的 SQL 文本很少超过这个数
const defaultTemplateCacheSize = 256

type segmentKind uint8

const (
	segLiteral segmentKind = iota
	// ?
	segPositional
	// $1
	segNumbered
	// :name
	segNamed
)

type segment struct {
	kind  segmentKind
	text  string
	index int
	name  string
}

type placeholderStyle uint8

const (
	styleNone placeholderStyle = iota
	stylePositional
	styleNumbered
	styleNamed
)

// template 是 SQL 文本解析之后的结果, 解析之后只读
type template struct {
	segments []segment
	style    placeholderStyle
	// 位置参数个数 / 编号参数的最大编号 / 命名参数出现的次数
	count int
	// 命名参数按出现顺序排列, 同名参数会出现多次
	names []string
}

// parseTemplate 找出 SQL 里的占位符
// 引号里的内容和注释按方言的写法跳过, 三种占位符风格不能混用
func parseTemplate(query string, q quoting) (*template, error) {
	t := &template{}
	n := len(query)
	start := 0
	flush := func(end int) {
		if end > start {
			t.segments = append(t.segments, segment{kind: segLiteral, text: query[start:end]})
		}
	}
	use := func(pos int, style placeholderStyle) error {
		if t.style != styleNone && t.style != style {
			return errs.NewErrMalformedTemplate(pos, "不能混用多种占位符")
		}
		t.style = style
		return nil
	}

	for i := 0; i < n; {
		next, err := q.skip(query, i)
		if err != nil {
			return nil, err
		}
		if next > i {
			i = next
			continue
		}
		c := query[i]
		switch {
		case c == '?':
			if err := use(i, stylePositional); err != nil {
				return nil, err
			}
			flush(i)
			t.segments = append(t.segments, segment{kind: segPositional, index: t.count})
			t.count++
			i++
			start = i
		case c == '$' && i+1 < n && isDigit(query[i+1]):
			j := i + 1
			for j < n && isDigit(query[j]) {
				j++
			}
			idx, err := strconv.Atoi(query[i+1 : j])
			if err != nil || idx == 0 {
				return nil, errs.NewErrMalformedTemplate(i, "非法的参数编号 "+query[i:j])
			}
			if err := use(i, styleNumbered); err != nil {
				return nil, err
			}
			flush(i)
			t.segments = append(t.segments, segment{kind: segNumbered, index: idx, text: query[i:j]})
			if idx > t.count {
				t.count = idx
			}
			i = j
			start = i
		case c == ':':
			// PostgreSQL 的类型转换 ::
			if i+1 < n && query[i+1] == ':' {
				i += 2
				continue
			}
			j := i + 1
			for j < n && isNameByte(query[j], j == i+1) {
				j++
			}
			if j == i+1 {
				// 后面不是名字, 比如 MySQL 的 :=
				i++
				continue
			}
			if err := use(i, styleNamed); err != nil {
				return nil, err
			}
			flush(i)
			name := query[i+1 : j]
			t.segments = append(t.segments, segment{kind: segNamed, name: name})
			t.names = append(t.names, name)
			t.count++
			i = j
			start = i
		default:
			i++
		}
	}
	flush(n)

	if t.style == styleNumbered {
		seen := make([]bool, t.count+1)
		for _, seg := range t.segments {
			if seg.kind == segNumbered {
				seen[seg.index] = true
			}
		}
		for idx := 1; idx <= t.count; idx++ {
			if !seen[idx] {
				return nil, errs.NewErrMalformedTemplate(0, "缺少参数 $"+strconv.Itoa(idx))
			}
		}
	}
	return t, nil
}

// skip 如果 i 处是字符串字面量或者注释, 返回它结束之后的位置, 否则返回 i
func (q quoting) skip(query string, i int) (int, error) {
	n := len(query)
	c := query[i]
	switch {
	case c == '\'' || c == '"':
		end, ok := skipQuoted(query, i, q.backslash)
		if !ok {
			return 0, errs.NewErrMalformedTemplate(i, "引号没有闭合")
		}
		return end, nil
	case c == '`':
		// 反引号里没有反斜杠转义
		end, ok := skipQuoted(query, i, false)
		if !ok {
			return 0, errs.NewErrMalformedTemplate(i, "引号没有闭合")
		}
		return end, nil
	case c == '-' && i+1 < n && query[i+1] == '-',
		c == '#' && q.hash:
		end := strings.IndexByte(query[i:], '\n')
		if end < 0 {
			return n, nil
		}
		return i + end + 1, nil
	case c == '/' && i+1 < n && query[i+1] == '*':
		end := strings.Index(query[i+2:], "*/")
		if end < 0 {
			return 0, errs.NewErrMalformedTemplate(i, "注释没有闭合")
		}
		return i + end + 4, nil
	case c == '$' && q.dollar:
		tag, ok := dollarTag(query, i)
		if !ok {
			return i, nil
		}
		end := strings.Index(query[i+len(tag):], tag)
		if end < 0 {
			return 0, errs.NewErrMalformedTemplate(i, "字符串 "+tag+" 没有闭合")
		}
		return i + len(tag) + end + len(tag), nil
	}
	return i, nil
}

// skipQuoted 返回引号闭合之后的位置, 两个连续的引号代表转义
// backslash 为 true 时反斜杠转义下一个字符
func skipQuoted(query string, i int, backslash bool) (int, bool) {
	quote := query[i]
	for j := i + 1; j < len(query); j++ {
		if backslash && query[j] == '\\' {
			j++
			continue
		}
		if query[j] != quote {
			continue
		}
		if j+1 < len(query) && query[j+1] == quote {
			j++
			continue
		}
		return j + 1, true
	}
	return 0, false
}

// dollarTag 识别 $$ 或者 $tag$, tag 不能以数字开头, 所以 $1 不是
func dollarTag(query string, i int) (string, bool) {
	// a$b 这种是标识符的一部分
	if i > 0 && (isNameByte(query[i-1], false) || query[i-1] == '$') {
		return "", false
	}
	j := i + 1
	for j < len(query) && isNameByte(query[j], j == i+1) {
		j++
	}
	if j >= len(query) || query[j] != '$' {
		return "", false
	}
	return query[i : j+1], true
}

// StripLiterals 把 SQL 里的字符串字面量和注释替换成空格, 剩下的就是关键字、标识符和占位符
// 字面量的写法按 d 的规则识别
func StripLiterals(query string, d Dialect) (string, error) {
	q := d.quoting()
	var sb strings.Builder
	sb.Grow(len(query))
	for i := 0; i < len(query); {
		next, err := q.skip(query, i)
		if err != nil {
			return "", err
		}
		if next > i {
			sb.WriteByte(' ')
			i = next
			continue
		}
		sb.WriteByte(query[i])
		i++
	}
	return sb.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameByte(c byte, first bool) bool {
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return true
	}
	return !first && isDigit(c)
}

// render 按方言输出占位符
func (t *template) render(d Dialect) string {
	var sb strings.Builder
	slot := 0
	for _, seg := range t.segments {
		switch seg.kind {
		case segLiteral:
			sb.WriteString(seg.text)
		case segNumbered:
			// 编号参数是用户自己写的, 原样保留
			sb.WriteString(seg.text)
		case segPositional, segNamed:
			d.placeholder(&sb, slot)
			slot++
		}
	}
	return sb.String()
}

// templateCache 缓存 SQL 文本的解析结果, 不缓存预编译语句
type templateCache struct {
	quoting quoting
	cache   *lru.Cache[string, *template]
	// 同一段 SQL 被并发解析时只解析一次
	group singleflight.Group
}

func newTemplateCache(size int, q quoting) *templateCache {
	if size <= 0 {
		size = defaultTemplateCacheSize
	}
	// size 大于 0 时不会出错
	cache, _ := lru.New[string, *template](size)
	return &templateCache{quoting: q, cache: cache}
}

func (c *templateCache) get(query string) (*template, error) {
	if t, ok := c.cache.Get(query); ok {
		return t, nil
	}
	val, err, _ := c.group.Do(query, func() (any, error) {
		// 上一轮 Do 可能刚刚写入
		if t, ok := c.cache.Get(query); ok {
			return t, nil
		}
		t, err := parseTemplate(query, c.quoting)
		if err != nil {
			return nil, err
		}
		c.cache.Add(query, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*template), nil
}
