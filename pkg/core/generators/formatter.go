package generators

import (
	"fmt"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalTimestampLayout 时间列统一输出格式，UTC 毫秒精度，不带时区后缀
const CanonicalTimestampLayout = "2006-01-02 15:04:05.000"

// sf4c 日期值的包裹格式 /Date(毫秒)/，毫秒可以为负数，时区偏移部分直接忽略
var wrappedEpochPattern = regexp.MustCompile(`^/Date\((-?\d+)(?:[+-]\d+)?\)/$`)

// 包裹格式之外的常规日历格式，按顺序尝试
var calendarLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseApiDate 解析接口返回的日期值，支持 /Date(毫秒)/ 包裹格式和常规日历格式，
// 统一转换成 UTC 规范字符串，空值或无法解析返回 false
func ParseApiDate(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", false
		}
		if matches := wrappedEpochPattern.FindStringSubmatch(v); matches != nil {
			millis, err := strconv.ParseInt(matches[1], 10, 64)
			if err != nil {
				return "", false
			}

			return time.UnixMilli(millis).UTC().Format(CanonicalTimestampLayout), true
		}
		for _, layout := range calendarLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed.UTC().Format(CanonicalTimestampLayout), true
			}
		}
	case float64:
		// json 数值解码后是 float64，按毫秒时间戳处理
		return time.UnixMilli(int64(v)).UTC().Format(CanonicalTimestampLayout), true
	case time.Time:
		return v.UTC().Format(CanonicalTimestampLayout), true
	}

	return "", false
}

// EscapeText 把非空值转成字符串并把单引号翻倍，空值返回 false
func EscapeText(value interface{}) (string, bool) {
	if value == nil {
		return "", false
	}

	raw, ok := value.(string)
	if !ok {
		raw = fmt.Sprint(value)
	}

	return strings.ReplaceAll(raw, "'", "''"), true
}

// FormatColumnValue 按列渲染 sql 字面量：时间列走方言的时间戳语法，
// 日期解析失败降级为 NULL，其余列统一输出单引号字符串
func FormatColumnValue(value interface{}, column string, builder types.StatementBuilder) string {
	if value == nil {
		return "NULL"
	}

	if _, isDate := types.DateColumns[column]; isDate {
		canonical, ok := ParseApiDate(value)
		if !ok {
			return "NULL"
		}

		return builder.TimestampLiteral(canonical)
	}

	escaped, ok := EscapeText(value)
	if !ok {
		return "NULL"
	}

	return "'" + escaped + "'"
}
