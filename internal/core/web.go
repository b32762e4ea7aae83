package core

import (
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"time"
)

// syncRequest web 触发参数，日期都是可选的
type syncRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// syncHandle 同步触发接口，参数校验失败不发起任何网络请求
func (c *Core) syncHandle(ctx *gin.Context) {
	var req syncRequest
	// 空请求体等价于全缺省参数
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code": http.StatusBadRequest, "message": err.Error(),
		})
		return
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code": http.StatusBadRequest, "message": err.Error(),
		})
		return
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code": http.StatusBadRequest, "message": err.Error(),
		})
		return
	}

	result, err := c.h.invoke(types.NewSyncParams(types.TriggerWeb, start, end))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{
			"code": http.StatusBadGateway, "message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// healthHandle 存活检查
func (c *Core) healthHandle(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := types.ParseSyncDate(raw)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
