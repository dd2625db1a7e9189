package csvparse

import (
	"strings"
)

// ── 单行解析 ──────────────────────────────────────────────
//
// 规则：
//   - 引号外的 " 开启引号字段；引号内的 "" 输出一个字面量 "，引号内单独的 " 关闭引号
//   - 引号外的 , 结束当前字段
//   - 每个字段去除首尾空白
//   - 行尾的累积内容总会作为最后一个字段（即使为空）
//   - 未闭合的引号在行尾视为隐式闭合
//
// 一行即一条记录，不支持跨行的引号字段。
// ─────────────────────────────────────────────────────────────

// ParseLine 将一行逗号分隔文本解析为字段列表
func ParseLine(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i += 2
				continue
			}
			inQuotes = !inQuotes
			i++
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
			i++
		default:
			cur.WriteByte(ch)
			i++
		}
	}

	return append(fields, strings.TrimSpace(cur.String()))
}

// SplitLines 去除首尾空白后按行切分，兼容 CRLF
func SplitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ── 回写转义 ──

// EscapeField 对需要转义的字段加引号，内部引号加倍
func EscapeField(field string) string {
	if field == "" {
		return field
	}
	needsQuote := strings.ContainsAny(field, ",\"\n\r") ||
		strings.TrimSpace(field) != field
	if !needsQuote {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// FormatLine 将字段列表序列化为一行，ParseLine 的逆操作
func FormatLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, ",")
}
