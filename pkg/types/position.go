package types

import "fmt"

type (
	// PositionRecord 上游接口返回的一条职位记录
	// 字段值可能是字符串、数字或显式 null，拉取后只读不修改
	PositionRecord map[string]interface{}

	// TransformedRecord 字段映射之后的记录，key 为目标表列名
	TransformedRecord map[string]interface{}

	// FieldPair 接口字段到目标列的一对映射
	FieldPair struct {
		ApiField string // 接口字段名 ($select 投影使用)
		Column   string // 目标表列名
	}

	// FieldMapping 有序字段映射表
	// 同时决定 $select 投影内容和生成语句的列顺序，进程生命周期内不可变
	FieldMapping []FieldPair
)

// DefaultPositionMapping sf4c Position 实体的默认字段映射
var DefaultPositionMapping = FieldMapping{
	{ApiField: "code", Column: "code"},
	{ApiField: "positionTitle", Column: "position_title"},
	{ApiField: "jobTitle", Column: "job_title"},
	{ApiField: "department", Column: "department"},
	{ApiField: "division", Column: "division"},
	{ApiField: "businessUnit", Column: "business_unit"},
	{ApiField: "location", Column: "location"},
	{ApiField: "jobCode", Column: "job_code"},
	{ApiField: "company", Column: "company"},
	{ApiField: "costCenter", Column: "cost_center"},
	{ApiField: "targetFTE", Column: "target_fte"},
	{ApiField: "vacant", Column: "vacant"},
	{ApiField: "effectiveStartDate", Column: ColumnEffectiveStartDate},
	{ApiField: "effectiveEndDate", Column: ColumnEffectiveEndDate},
	{ApiField: "lastModifiedDateTime", Column: ColumnLastModifiedDateTime},
}

// SelectFields 返回接口字段名列表，顺序和映射表一致
func (m FieldMapping) SelectFields() []string {
	fields := make([]string, len(m))
	for i, pair := range m {
		fields[i] = pair.ApiField
	}

	return fields
}

// Columns 返回目标列名列表，顺序和映射表一致
func (m FieldMapping) Columns() []string {
	columns := make([]string, len(m))
	for i, pair := range m {
		columns[i] = pair.Column
	}

	return columns
}

// Transform 把接口记录转换成目标列记录
// 接口字段存在时原样拷贝 (包括显式 null)，不存在时填 nil
// 纯函数，任何输入都不会失败
func (m FieldMapping) Transform(record PositionRecord) TransformedRecord {
	transformed := make(TransformedRecord, len(m))
	for _, pair := range m {
		if value, ok := record[pair.ApiField]; ok {
			transformed[pair.Column] = value
		} else {
			transformed[pair.Column] = nil
		}
	}

	return transformed
}

// StringField 获取记录中某个字段的字符串形式，字段缺失或为 null 时返回空字符串
func (r PositionRecord) StringField(name string) string {
	value, ok := r[name]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}

	return fmt.Sprint(value)
}
