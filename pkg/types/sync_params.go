package types

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"time"
)

type (
	// SyncParams 单次同步的执行参数
	// 每次触发 (web/cron/once) 生成一份，同步过程中只读，多次同步互不共享
	SyncParams struct {
		RunId     string     `json:"run_id"`               // 本次同步唯一标识
		StartDate *time.Time `json:"start_date,omitempty"` // 过滤起始时间，可为空
		EndDate   *time.Time `json:"end_date,omitempty"`   // 过滤截止时间，可为空
		Trigger   string     `json:"trigger"`              // 触发来源 web|cron|once
	}

	// SyncResult 单次同步的汇总结果，返回给触发方，不落库
	SyncResult struct {
		RunId      string            `json:"run_id"`
		Fetched    int               `json:"fetched"`     // 拉取总条数
		Matched    int               `json:"matched"`     // 通过部门过滤条数
		Statements int               `json:"statements"`  // 生成语句总数 (所有方言)
		Files      map[string]string `json:"files"`       // 方言 -> 输出文件路径
		DurationMs int64             `json:"duration_ms"` // 耗时毫秒
	}
)

// NewSyncParams 创建同步参数并分配 run_id
func NewSyncParams(trigger string, start, end *time.Time) *SyncParams {
	return &SyncParams{
		RunId: uuid.NewString(), Trigger: trigger,
		StartDate: start, EndDate: end,
	}
}

// 触发接口允许的日期格式
var syncDateLayouts = []string{"2006-01-02T15:04:05", "2006-01-02"}

// ParseSyncDate 解析触发接口传入的日期参数
// 只接受 YYYY-MM-DD 和 YYYY-MM-DDTHH:MM:SS 两种格式，解析失败在任何网络请求之前返回
func ParseSyncDate(raw string) (time.Time, error) {
	for _, layout := range syncDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, errors.Errorf(
		"invalid date %q, expect YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", raw)
}
