package generators

import (
	"fmt"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"strings"
	"time"
)

type (
	// generator 两种方言共用的基础结构，持有列映射
	generator struct {
		mapping types.FieldMapping
	}

	BuilderConstructor func(mapping types.FieldMapping) types.StatementBuilder
)

var _builderConstructors = make(map[string]BuilderConstructor) // 方言构造函数 映射表

func init() {
	SetBuilderConstructor(types.DialectOracle, NewOracleBuilder)
	SetBuilderConstructor(types.DialectPostgres, NewPostgresBuilder)
}

func SetBuilderConstructor(dialect string, fn BuilderConstructor) {
	_builderConstructors[dialect] = fn
}

// GetBuilderConstructor 获取方言构造函数
func GetBuilderConstructor(dialect string) BuilderConstructor {
	return _builderConstructors[dialect]
}

// renderMappedValues 按映射顺序渲染一条记录的全部列值
func (g *generator) renderMappedValues(record types.PositionRecord, builder types.StatementBuilder) []string {
	transformed := g.mapping.Transform(record)
	values := make([]string, 0, len(g.mapping))
	for _, pair := range g.mapping {
		values = append(values, FormatColumnValue(transformed[pair.Column], pair.Column, builder))
	}

	return values
}

const headerRule = "-- ============================================================"

const rangeLayout = "2006-01-02 15:04:05"

// describeDateRange 描述本次同步覆盖的修改时间区间
func describeDateRange(params *types.SyncParams) string {
	start, end := params.StartDate, params.EndDate
	switch {
	case start != nil && end != nil:
		return start.Format(rangeLayout) + " ~ " + end.Format(rangeLayout)
	case start != nil:
		return "from " + start.Format(rangeLayout)
	case end != nil:
		return "until " + end.Format(rangeLayout)
	default:
		return "Yesterday"
	}
}

// BuildHeader 生成脚本头部注释，包含生成时间、同步区间、部门前缀和方言名
func BuildHeader(params *types.SyncParams, prefix, dialect string, generatedAt time.Time) string {
	lines := []string{
		headerRule,
		fmt.Sprintf("-- Position sync script (%s)", strings.ToUpper(dialect)),
		fmt.Sprintf("-- Generated at: %s", generatedAt.UTC().Format(CanonicalTimestampLayout)),
		fmt.Sprintf("-- Date range: %s", describeDateRange(params)),
		fmt.Sprintf("-- Department prefix: %s", prefix),
		headerRule,
	}

	return strings.Join(lines, "\n")
}

// BuildFooter 生成脚本尾部注释，记录总条数
func BuildFooter(total int) string {
	lines := []string{
		headerRule,
		fmt.Sprintf("-- Total records: %d", total),
		headerRule,
	}

	return strings.Join(lines, "\n")
}

// BuildDocument 渲染一个方言的完整 sql 脚本，语句之间空行分隔
func BuildDocument(builder types.StatementBuilder, records []types.PositionRecord,
	params *types.SyncParams, prefix string, generatedAt time.Time) string {
	parts := make([]string, 0, len(records)+2)
	parts = append(parts, BuildHeader(params, prefix, builder.Dialect(), generatedAt))
	for _, record := range records {
		parts = append(parts, builder.BuildUpsert(record))
	}
	parts = append(parts, BuildFooter(len(records)))

	return strings.Join(parts, "\n\n") + "\n"
}
