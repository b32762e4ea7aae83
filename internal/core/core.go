package core

import (
	"context"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/configs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/core/fetchers"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/core/filters"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/core/generators"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const version = "1.1.0"

type Core struct {
	conf       *configs.SyncConfig
	ctx        context.Context
	cancelFunc context.CancelFunc
	h          *handler
	srv        *http.Server
	crontab    *cron.Cron
}

func NewCore(conf *configs.SyncConfig) (*Core, error) {
	mapping := types.DefaultPositionMapping
	builders := make([]types.StatementBuilder, 0, len(types.Dialects))
	for _, dialect := range types.Dialects {
		constructor := generators.GetBuilderConstructor(dialect)
		if constructor == nil {
			return nil, errors.Errorf("undefined sql builder %s", dialect)
		}
		builders = append(builders, constructor(mapping))
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	h := &handler{
		conf: conf, ctx: ctx, mapping: mapping, builders: builders,
		filter:     filters.NewPrefixFilter(conf.Filter.DepartmentPrefix),
		newFetcher: fetchers.GetFetcherConstructor(types.FetcherTypeSF4C),
	}

	pool, err := ants.NewPoolWithFunc(conf.PoolSize, h.run)
	if err != nil {
		defer cancelFunc()
		return nil, errors.WithStack(err)
	}
	h.pool = pool

	// 输出目录提前建好，同步过程中只做文件写入
	if err := os.MkdirAll(filepath.Dir(conf.Output.BasePath), 0755); err != nil {
		defer cancelFunc()
		return nil, errors.WithStack(err)
	}

	c := &Core{conf: conf, ctx: ctx, cancelFunc: cancelFunc, h: h}

	engine := gin.Default()
	engine.POST(conf.Server.SyncPath, c.syncHandle)
	engine.GET("/api/v1/health", c.healthHandle)
	c.srv = &http.Server{Addr: conf.Server.Listen, Handler: engine}

	if conf.Schedule.Cron != "" {
		c.crontab = cron.New()
		if _, err := c.crontab.AddFunc(conf.Schedule.Cron, c.scheduledSync); err != nil {
			defer cancelFunc()
			return nil, errors.Wrapf(err, "invalid cron expression %s", conf.Schedule.Cron)
		}
	}

	return c, nil
}

// Run 启动定时器和 web 触发服务，阻塞到服务关闭
func (c *Core) Run() error {
	if c.crontab != nil {
		c.crontab.Start()
	}

	zap.L().Info("服务启动",
		zap.String("listen", c.conf.Server.Listen), zap.String("version", version))
	if err := c.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.WithStack(err)
	}

	return nil
}

// RunOnce 单次同步模式，不启动 web 服务直接执行一轮
func (c *Core) RunOnce(start, end *time.Time) (*types.SyncResult, error) {
	return c.h.invoke(types.NewSyncParams(types.TriggerOnce, start, end))
}

// scheduledSync 定时触发，按缺省区间 (昨天以来) 同步
func (c *Core) scheduledSync() {
	if _, err := c.h.invoke(types.NewSyncParams(types.TriggerCron, nil, nil)); err != nil {
		zap.L().Error("定时同步失败", zap.Error(err))
	}
}

func (c *Core) Stop() {
	c.cancelFunc()
	if c.crontab != nil {
		c.crontab.Stop()
	}
	if c.srv != nil {
		timeout, cancelFunc := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancelFunc()

		if err := c.srv.Shutdown(timeout); err != nil {
			zap.L().Error("web 服务关闭失败", zap.Error(err))
		}
	}
	c.h.pool.Release()
}
