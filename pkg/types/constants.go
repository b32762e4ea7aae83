package types

const DialectOracle = "oracle"     // oracle 方言 (MERGE 条件写入)
const DialectPostgres = "postgres" // postgres 方言 (ON CONFLICT 跳过写入)

// Dialects 每次同步输出的方言列表，顺序即输出文件顺序
var Dialects = []string{DialectOracle, DialectPostgres}

const FetcherTypeSF4C = "sf4c" // sf4c 类型拉取器

const TargetTable = "job_sf_position" // 目标职位表名
const KeyColumn = "code"              // 业务唯一键列名

const FieldCode = "code"             // 职位编码字段
const FieldDepartment = "department" // 部门字段 (前缀过滤依赖)

const ColumnEffectiveStartDate = "effective_start_date"
const ColumnEffectiveEndDate = "effective_end_date"
const ColumnLastModifiedDateTime = "last_modified_date_time"

// DateColumns 日期列集合，集合内列的值需要解析并转换成方言时间戳字面量
var DateColumns = map[string]struct{}{
	ColumnEffectiveStartDate:   {},
	ColumnEffectiveEndDate:     {},
	ColumnLastModifiedDateTime: {},
}

const TriggerWeb = "web"   // web 接口触发
const TriggerCron = "cron" // 定时任务触发
const TriggerOnce = "once" // 命令行单次触发
