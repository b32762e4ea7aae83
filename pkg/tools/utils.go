package tools

import (
	"gopkg.in/yaml.v2"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Defaulter 实现该接口的配置字段自己解析 default tag 的值
type Defaulter interface {
	SetDefault(raw string) error
}

// UnmarshalYamlAndBuildDefault 解析 yaml 配置并按 default tag 填充零值字段
func UnmarshalYamlAndBuildDefault(in []byte, dest interface{}) error {
	if err := yaml.Unmarshal(in, dest); err != nil {
		return err
	}

	return applyDefaults(reflect.ValueOf(dest), "")
}

// applyDefaults 递归遍历结构体字段，零值字段按 default tag 赋默认值
func applyDefaults(field reflect.Value, tag string) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}

	if field.Kind() != reflect.Struct {
		return setDefaultValue(field, tag)
	}

	valType := field.Type()
	for i := 0; i < valType.NumField(); i++ {
		inner, innerType := field.Field(i), valType.Field(i)
		if !inner.CanSet() {
			continue
		}
		if err := applyDefaults(inner, innerType.Tag.Get("default")); err != nil {
			return err
		}
	}

	return nil
}

// setDefaultValue 给单个零值字段赋默认值
func setDefaultValue(field reflect.Value, tag string) error {
	if tag == "" || !field.IsZero() {
		return nil
	}

	if field.CanAddr() {
		if defaulter, ok := field.Addr().Interface().(Defaulter); ok {
			return defaulter.SetDefault(tag)
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(tag)
	case reflect.Bool:
		val, err := strconv.ParseBool(tag)
		if err != nil {
			return err
		}
		field.SetBool(val)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			val, err := time.ParseDuration(tag)
			if err != nil {
				return err
			}
			field.SetInt(int64(val))
			return nil
		}
		val, err := strconv.ParseInt(tag, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(val)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(tag, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(val)
	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(tag, 64)
		if err != nil {
			return err
		}
		field.SetFloat(val)
	}

	return nil
}

// Yesterday 当前时间减一天并截断到秒，作为缺省的增量过滤起点
func Yesterday(now time.Time) time.Time {
	return now.Add(-24 * time.Hour).Truncate(time.Second)
}

// FileStampLayout 输出文件名里的同步时间戳格式
const FileStampLayout = "20060102T150405"

// TimestampedPath 根据配置的基础文件名生成带同步时间戳和方言后缀的输出路径
// 例: output/positions.sql -> output/positions_20240308T160519_oracle.sql
func TimestampedPath(base, stamp, dialect string) string {
	trimmed := strings.TrimSuffix(base, filepath.Ext(base))

	return trimmed + "_" + stamp + "_" + dialect + ".sql"
}
