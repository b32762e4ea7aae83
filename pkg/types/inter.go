package types

import "context"

type (
	// Fetcher 分页拉取器，一次同步对应一个实例
	// FetchPage 内部完成重试，调用方负责翻页和终止判断
	Fetcher interface {
		FetchPage(ctx context.Context, offset int) ([]PositionRecord, error)
		PageSize() int
	}

	// StatementBuilder 方言语句构造器
	// 两种方言语义等价: 按业务键 code 去重，只在不存在时插入
	StatementBuilder interface {
		Dialect() string
		TimestampLiteral(canonical string) string
		BuildUpsert(record PositionRecord) string
	}

	// Filter 记录过滤器，保序返回命中的记录
	Filter interface {
		Apply(records []PositionRecord) []PositionRecord
	}
)
