package csvparse

import (
	"strconv"
	"strings"
)

// Row 按列序访问的一行数据
type Row []string

// At 返回第 i 列，越界返回空串
func (r Row) At(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Record 按列名访问的一行数据
type Record map[string]string

// Get 返回列值，缺失返回空串
func (r Record) Get(name string) string {
	return r[name]
}

// LoadPositional 首行为表头但被丢弃，其余行按固定列序交给 mapper
func LoadPositional[T any](text string, mapper func(Row) T) []T {
	lines := SplitLines(text)
	if len(lines) < 2 {
		return []T{}
	}

	out := make([]T, 0, len(lines)-1)
	for _, line := range lines[1:] {
		out = append(out, mapper(Row(ParseLine(line))))
	}
	return out
}

// LoadWithHeaders 首行字段作为列名，其余行转为 列名→值 映射后交给 mapper
func LoadWithHeaders[T any](text string, mapper func(Record) T) []T {
	lines := SplitLines(text)
	if len(lines) < 2 {
		return []T{}
	}

	headers := ParseLine(lines[0])
	out := make([]T, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := ParseLine(line)
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(values) {
				rec[h] = values[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, mapper(rec))
	}
	return out
}

// Int 尽力解析整数：取前导数字部分（允许符号与小数，小数截断），失败返回 0
func Int(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// OptionalInt 空串返回 nil，否则按 Int 解析
func OptionalInt(s string) *int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n := Int(s)
	return &n
}

// Bool 仅字面量 "true" 为真
func Bool(s string) bool {
	return s == "true"
}

// Or 空串时返回默认值
func Or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
