package generators

import (
	"fmt"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"strings"
)

// OracleBuilder merge 风格构造器，目标表里已存在同 code 记录时跳过插入
type OracleBuilder struct {
	*generator
}

func NewOracleBuilder(mapping types.FieldMapping) types.StatementBuilder {
	return &OracleBuilder{&generator{mapping: mapping}}
}

func (b *OracleBuilder) Dialect() string {
	return types.DialectOracle
}

// TimestampLiteral oracle 时间戳字面量走 TO_TIMESTAMP 函数
func (b *OracleBuilder) TimestampLiteral(canonical string) string {
	return fmt.Sprintf("TO_TIMESTAMP('%s', 'YYYY-MM-DD HH24:MI:SS.FF3')", canonical)
}

// BuildUpsert 生成单条 merge 语句，源表是只带业务主键的单行子查询
func (b *OracleBuilder) BuildUpsert(record types.PositionRecord) string {
	values := b.renderMappedValues(record, b)
	columns := b.mapping.Columns()
	keyLiteral := FormatColumnValue(record[types.FieldCode], types.KeyColumn, b)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("MERGE INTO %s t\n", types.TargetTable))
	sb.WriteString(fmt.Sprintf("USING (SELECT %s AS %s FROM dual) s\n", keyLiteral, types.KeyColumn))
	sb.WriteString(fmt.Sprintf("ON (t.%s = s.%s)\n", types.KeyColumn, types.KeyColumn))
	sb.WriteString(fmt.Sprintf("WHEN NOT MATCHED THEN INSERT (%s)\n", strings.Join(columns, ", ")))
	sb.WriteString(fmt.Sprintf("VALUES (%s);", strings.Join(values, ", ")))

	return sb.String()
}
