package csvparse

import "fmt"

// Kind 列的值类型
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Column 列定义：名称、类型、缺省值（值为空时使用）
type Column struct {
	Name    string
	Kind    Kind
	Default string
}

// Schema 有序列定义，加载时对表头校验一次，之后按列名取强类型值
type Schema struct {
	Name    string
	Columns []Column
	index   map[string]Column
}

// NewSchema 创建 Schema
func NewSchema(name string, cols ...Column) *Schema {
	idx := make(map[string]Column, len(cols))
	for _, c := range cols {
		idx[c.Name] = c
	}
	return &Schema{Name: name, Columns: cols, index: idx}
}

// Missing 返回表头中缺失的列名（按 Schema 顺序）
func (s *Schema) Missing(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, c := range s.Columns {
		if _, ok := present[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

// Values 绑定 Schema 的一行数据
type Values struct {
	schema *Schema
	rec    Record
}

// raw 取列的原始文本；列未声明或访问类型与声明不符时 panic（mapper 编写错误）
func (v Values) raw(name string, kind Kind) string {
	col, ok := v.schema.index[name]
	if !ok {
		panic(fmt.Sprintf("csvparse: column %q not declared in schema %q", name, v.schema.Name))
	}
	if col.Kind != kind {
		panic(fmt.Sprintf("csvparse: column %q in schema %q is %s, read as %s", name, v.schema.Name, col.Kind, kind))
	}
	return Or(v.rec.Get(name), col.Default)
}

// String 取字符串列
func (v Values) String(name string) string {
	return v.raw(name, KindString)
}

// Int 取整数列，解析失败为 0
func (v Values) Int(name string) int {
	return Int(v.raw(name, KindInt))
}

// OptionalInt 取可选整数列，空值为 nil
func (v Values) OptionalInt(name string) *int {
	return OptionalInt(v.raw(name, KindInt))
}

// Bool 取布尔列，仅 "true" 为真
func (v Values) Bool(name string) bool {
	return Bool(v.raw(name, KindBool))
}

// Result 按 Schema 加载的结果
type Result[T any] struct {
	Items   []T
	Missing []string
}

// LoadSchema 以表头模式加载并按 Schema 映射；缺失列在 Missing 中报告，取值时回落到缺省值
func LoadSchema[T any](text string, schema *Schema, mapper func(Values) T) Result[T] {
	lines := SplitLines(text)
	if len(lines) < 2 {
		return Result[T]{Items: []T{}}
	}

	missing := schema.Missing(ParseLine(lines[0]))
	items := LoadWithHeaders(text, func(rec Record) T {
		return mapper(Values{schema: schema, rec: rec})
	})
	return Result[T]{Items: items, Missing: missing}
}
