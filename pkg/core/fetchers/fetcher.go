package fetchers

import (
	"github.com/extras28/pull-job-position-from-sf4c/pkg/configs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
)

type FetcherConstructor func(conf *configs.ApiConfig, mapping types.FieldMapping,
	params *types.SyncParams) (types.Fetcher, error)

// 拉取器构造函数集合
var _fetchers = make(map[string]FetcherConstructor)

func init() {
	RegisterFetcherConstructor(types.FetcherTypeSF4C, NewSfFetcher)
}

// RegisterFetcherConstructor 注册拉取器构造函数
func RegisterFetcherConstructor(name string, fn FetcherConstructor) {
	_fetchers[name] = fn
}

// GetFetcherConstructor 获取拉取器构造函数
func GetFetcherConstructor(name string) FetcherConstructor {
	return _fetchers[name]
}
