package filters

import (
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"strings"
)

// PrefixFilter 按部门前缀过滤，前缀为空时全量保留
type PrefixFilter struct {
	prefix string
}

func NewPrefixFilter(prefix string) types.Filter {
	return &PrefixFilter{prefix: prefix}
}

// Apply 保留部门字段以配置前缀开头的记录，保持原始顺序，部门缺失按空字符串处理
func (f *PrefixFilter) Apply(records []types.PositionRecord) []types.PositionRecord {
	if f.prefix == "" {
		return records
	}

	matched := make([]types.PositionRecord, 0, len(records))
	for _, record := range records {
		if strings.HasPrefix(record.StringField(types.FieldDepartment), f.prefix) {
			matched = append(matched, record)
		}
	}

	return matched
}
