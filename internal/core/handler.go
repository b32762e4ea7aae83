package core

import (
	"context"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/configs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/core/fetchers"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/core/generators"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/tools"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/tools/logs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"os"
	"time"
)

type (
	handler struct {
		conf       *configs.SyncConfig
		ctx        context.Context
		mapping    types.FieldMapping
		builders   []types.StatementBuilder
		filter     types.Filter
		pool       *ants.PoolWithFunc
		newFetcher fetchers.FetcherConstructor
	}

	// syncJob 一次同步的执行载体，done 关闭代表执行结束
	syncJob struct {
		params *types.SyncParams
		result *types.SyncResult
		err    error
		done   chan struct{}
	}
)

func (j *syncJob) wait() (*types.SyncResult, error) {
	<-j.done

	return j.result, j.err
}

// invoke 分配同步任务到协程池并等待执行结束
func (h *handler) invoke(params *types.SyncParams) (*types.SyncResult, error) {
	job := &syncJob{params: params, done: make(chan struct{})}
	if err := h.pool.Invoke(job); err != nil {
		return nil, errors.WithStack(err)
	}

	return job.wait()
}

// run 协程池执行方法
func (h *handler) run(jobInter interface{}) {
	job := jobInter.(*syncJob)
	defer close(job.done)
	defer func() {
		if cause := recover(); cause != nil {
			job.err = errors.Errorf("recover: %v", cause)
			h.writeLog(job.params, job.err)
		}
	}()

	if job.result, job.err = h.execute(job.params); job.err != nil {
		h.writeLog(job.params, job.err)
	}
}

// execute 主同步逻辑：串行拉完全部分页，过滤累积后一次性生成两种方言脚本。
// 拉取阶段任何致命错误直接终止，文件只在全量结果确定后写出
func (h *handler) execute(params *types.SyncParams) (*types.SyncResult, error) {
	started := time.Now()
	fetcher, err := h.newFetcher(&h.conf.Api, h.mapping, params)
	if err != nil {
		return nil, err
	}

	var matched []types.PositionRecord
	var fetched, offset int
	for page := 1; ; page++ {
		records, err := fetcher.FetchPage(h.ctx, offset)
		if err != nil {
			return nil, err
		}

		pageMatched := h.filter.Apply(records)
		matched = append(matched, pageMatched...)
		fetched += len(records)
		offset += fetcher.PageSize()
		zap.L().Info("页面拉取完成",
			zap.String("run_id", params.RunId), zap.Int("page", page),
			zap.Int("fetched", len(records)), zap.Int("matched", len(pageMatched)),
			zap.Int("total_matched", len(matched)))

		// 返回条数不足一页代表数据拉完
		// 最后一页恰好占满时会多发一次空请求，与上游的分页约定保持一致
		if len(records) < fetcher.PageSize() {
			break
		}
	}

	result := &types.SyncResult{
		RunId: params.RunId, Fetched: fetched, Matched: len(matched),
		Files: make(map[string]string, len(h.builders)),
	}

	generatedAt := time.Now()
	stamp := generatedAt.UTC().Format(tools.FileStampLayout)
	for _, builder := range h.builders {
		document := generators.BuildDocument(builder, matched, params,
			h.conf.Filter.DepartmentPrefix, generatedAt)
		path := tools.TimestampedPath(h.conf.Output.BasePath, stamp, builder.Dialect())
		if err := os.WriteFile(path, []byte(document), 0644); err != nil {
			return nil, errors.Wrapf(err, "write %s script failed", builder.Dialect())
		}

		result.Files[builder.Dialect()] = path
		result.Statements += len(matched)
	}

	result.DurationMs = time.Since(started).Milliseconds()
	zap.L().Info("同步完成",
		zap.String("run_id", params.RunId), zap.String("trigger", params.Trigger),
		zap.Int("fetched", result.Fetched), zap.Int("matched", result.Matched),
		zap.Int("statements", result.Statements), zap.Int64("duration_ms", result.DurationMs))

	return result, nil
}

// writeLog 写入同步失败日志，带上错误链里最深的调用栈
func (h *handler) writeLog(params *types.SyncParams, err error) {
	fields := append([]zap.Field{zap.Reflect("params", params)}, logs.ParseErr(err)...)
	zap.L().Error("同步失败", fields...)
}
