package generators

import (
	"fmt"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"strings"
)

// PostgresBuilder conflict 风格构造器，code 冲突时直接跳过
type PostgresBuilder struct {
	*generator
}

func NewPostgresBuilder(mapping types.FieldMapping) types.StatementBuilder {
	return &PostgresBuilder{&generator{mapping: mapping}}
}

func (b *PostgresBuilder) Dialect() string {
	return types.DialectPostgres
}

// TimestampLiteral postgres 时间戳字面量用 ::timestamp 后缀转换
func (b *PostgresBuilder) TimestampLiteral(canonical string) string {
	return fmt.Sprintf("'%s'::timestamp", canonical)
}

func (b *PostgresBuilder) BuildUpsert(record types.PositionRecord) string {
	values := b.renderMappedValues(record, b)
	columns := b.mapping.Columns()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("INSERT INTO %s (%s)\n", types.TargetTable, strings.Join(columns, ", ")))
	sb.WriteString(fmt.Sprintf("VALUES (%s)\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING;", types.KeyColumn))

	return sb.String()
}
