package configs

import (
	"github.com/pkg/errors"
	"os"
	"time"
)

type (
	// SyncConfig 服务配置，启动时从 yaml 文件加载一次，运行期间只读
	SyncConfig struct {
		PoolSize int            `yaml:"pool_size" default:"4"` // 同步任务池大小
		Api      ApiConfig      `yaml:"api"`                   // sf4c 接口配置
		Filter   FilterConfig   `yaml:"filter"`                // 记录过滤配置
		Output   OutputConfig   `yaml:"output"`                // 输出文件配置
		Server   ServerConfig   `yaml:"server"`                // web 触发接口配置
		Schedule ScheduleConfig `yaml:"schedule"`              // 定时同步配置
	}

	ApiConfig struct {
		BaseUrl        string   `yaml:"base_url" default:"https://api.successfactors.eu/odata/v2"` // odata 服务地址
		CompanyId      string   `yaml:"company_id"`                                                // 公司标识，非空时拼接到用户名
		Username       string   `yaml:"username"`                                                  // 接口账户，支持环境变量覆盖
		Password       string   `yaml:"password"`                                                  // 接口密码，支持环境变量覆盖
		PageSize       int      `yaml:"page_size" default:"200"`                                   // 分页大小
		Timeout        Duration `yaml:"timeout" default:"30s"`                                     // 单请求超时
		RetryAttempts  int      `yaml:"retry_attempts" default:"3"`                                // 单页请求最大尝试次数
		RetryBaseDelay Duration `yaml:"retry_base_delay" default:"1s"`                             // 重试退避基础等待
	}

	FilterConfig struct {
		DepartmentPrefix string `yaml:"department_prefix"` // 部门前缀，空值保留全部记录
	}

	OutputConfig struct {
		BasePath string `yaml:"base_path" default:"output/positions.sql"` // 输出基础文件名
	}

	ServerConfig struct {
		Listen   string `yaml:"listen" default:":8080"`                     // 监听地址
		SyncPath string `yaml:"sync_path" default:"/api/v1/sync/positions"` // 同步触发路径
	}

	ScheduleConfig struct {
		Cron string `yaml:"cron"` // cron 表达式，空值关闭定时同步
	}
)

// 凭证环境变量，优先级高于配置文件
const envUsername = "SF4C_USERNAME"
const envPassword = "SF4C_PASSWORD"
const envCompanyId = "SF4C_COMPANY_ID"

// ApplyEnv 用环境变量覆盖接口凭证
func (c *SyncConfig) ApplyEnv() {
	if username := os.Getenv(envUsername); username != "" {
		c.Api.Username = username
	}
	if password := os.Getenv(envPassword); password != "" {
		c.Api.Password = password
	}
	if companyId := os.Getenv(envCompanyId); companyId != "" {
		c.Api.CompanyId = companyId
	}
}

// Validate 启动前校验，凭证缺失直接拒绝启动
func (c *SyncConfig) Validate() error {
	if c.Api.Username == "" || c.Api.Password == "" {
		return errors.Errorf("sf4c credentials required, set api.username/api.password or %s/%s",
			envUsername, envPassword)
	}
	if c.Api.PageSize <= 0 {
		return errors.Errorf("api.page_size must be positive, current: %d", c.Api.PageSize)
	}
	if c.Api.RetryAttempts < 1 {
		return errors.Errorf("api.retry_attempts must be at least 1, current: %d", c.Api.RetryAttempts)
	}
	if c.Output.BasePath == "" {
		return errors.New("output.base_path required")
	}

	return nil
}

// Duration yaml 里以 30s/1m 形式书写的时间段
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", raw)
	}
	*d = Duration(parsed)

	return nil
}

// SetDefault 实现 tools.Defaulter，default tag 和 yaml 同格式
func (d *Duration) SetDefault(raw string) error {
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)

	return nil
}
