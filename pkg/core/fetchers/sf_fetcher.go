package fetchers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/configs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/tools"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"
)

type (
	// SfFetcher sf4c odata 分页拉取器，同一个实例只服务一次同步
	SfFetcher struct {
		conf          *configs.ApiConfig
		params        *types.SyncParams
		client        *http.Client
		authorization string // 凭证构造时编码一次
		selectFields  string
		filter        string
		sleep         func(time.Duration) // 重试等待，测试时替换
	}

	// oDataEnvelope odata v2 固定的 {"d":{"results":[...]}} 响应外壳
	oDataEnvelope struct {
		D struct {
			Results []types.PositionRecord `json:"results"`
		} `json:"d"`
	}

	// apiError 非 2xx 响应，保留状态码和响应体用于定位
	apiError struct {
		status int
		body   string
	}
)

const positionEntity = "/Position"

const filterTimeLayout = "2006-01-02T15:04:05"

const maxErrBodyLen = 4 << 10

func (e *apiError) Error() string {
	return fmt.Sprintf("sf4c request failed, status: %d, body: %s", e.status, e.body)
}

func NewSfFetcher(conf *configs.ApiConfig, mapping types.FieldMapping,
	params *types.SyncParams) (types.Fetcher, error) {
	if conf.BaseUrl == "" {
		return nil, errors.New("sf4c base url required")
	}

	return &SfFetcher{
		conf: conf, params: params,
		client:        &http.Client{Timeout: time.Duration(conf.Timeout)},
		authorization: buildAuthorization(conf),
		selectFields:  strings.Join(mapping.SelectFields(), ","),
		filter:        buildDateFilter(params, time.Now),
		sleep:         time.Sleep,
	}, nil
}

func (f *SfFetcher) PageSize() int {
	return f.conf.PageSize
}

// FetchPage 拉取一页数据，可重试错误按指数退避重试，重试不推进偏移量
func (f *SfFetcher) FetchPage(ctx context.Context, offset int) ([]types.PositionRecord, error) {
	for attempt := 1; ; attempt++ {
		records, err := f.fetchOnce(ctx, offset)
		if err == nil {
			return records, nil
		}
		if !isRetryableErr(err) || attempt >= f.conf.RetryAttempts {
			return nil, errors.Wrapf(err, "fetch page failed, offset: %d, attempt: %d", offset, attempt)
		}

		delay := time.Duration(f.conf.RetryBaseDelay) << uint(attempt-1)
		zap.L().Warn("页面拉取失败, 等待重试",
			zap.Int("offset", offset), zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
		f.sleep(delay)
	}
}

func (f *SfFetcher) fetchOnce(ctx context.Context, offset int) ([]types.PositionRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.conf.BaseUrl+positionEntity, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	query := url.Values{}
	query.Set("$format", "json")
	query.Set("$top", strconv.Itoa(f.conf.PageSize))
	query.Set("$skip", strconv.Itoa(offset))
	query.Set("$select", f.selectFields)
	query.Set("$filter", f.filter)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", f.authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyLen))
		return nil, &apiError{status: resp.StatusCode, body: string(body)}
	}

	var envelope oDataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, "decode sf4c response failed")
	}

	return envelope.D.Results, nil
}

// buildAuthorization company id 非空时拼在用户名后，按 basic 方式编码
func buildAuthorization(conf *configs.ApiConfig) string {
	username := conf.Username
	if conf.CompanyId != "" {
		username = username + "@" + conf.CompanyId
	}
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + conf.Password))

	return "Basic " + token
}

// buildDateFilter 按修改时间构造服务端过滤表达式，起止都未指定时默认拉取昨天以来的数据
func buildDateFilter(params *types.SyncParams, now func() time.Time) string {
	start, end := params.StartDate, params.EndDate
	if start == nil && end == nil {
		yesterday := tools.Yesterday(now())
		start = &yesterday
	}

	conditions := make([]string, 0, 2)
	if start != nil {
		conditions = append(conditions,
			fmt.Sprintf("lastModifiedDateTime ge datetime'%s'", start.Format(filterTimeLayout)))
	}
	if end != nil {
		conditions = append(conditions,
			fmt.Sprintf("lastModifiedDateTime le datetime'%s'", end.Format(filterTimeLayout)))
	}

	return strings.Join(conditions, " and ")
}

// isRetryableErr 连接重置、连接中断、超时和 5xx 状态码可以重试，其余错误直接终止
func isRetryableErr(err error) bool {
	var respErr *apiError
	if errors.As(err, &respErr) {
		return respErr.status >= http.StatusInternalServerError
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNABORTED) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
