package logs

import (
	"fmt"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
)

// stackTracer github.com/pkg/errors 的 withStack/fundamental 都实现该接口
type stackTracer interface {
	StackTrace() errors.StackTrace
}

const maxStackDepth = 16 // 日志中保留的最大堆栈深度

// NewLogger 创建 json 格式的 zap logger，服务内通过 zap.ReplaceGlobals 全局使用
func NewLogger(level zapcore.Level) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(NewZapJsonEncoder(config),
		zapcore.AddSync(os.Stdout), level)

	return zap.New(core)
}

// ParseErr 把错误转换成结构化日志字段
// 错误链中存在堆栈时取最深一层 (最接近错误源头)，展开成 stack 字段
func ParseErr(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}

	var deepest stackTracer
	for cursor := err; cursor != nil; cursor = errors.Unwrap(cursor) {
		if tracer, ok := cursor.(stackTracer); ok {
			deepest = tracer
		}
	}

	if deepest != nil {
		trace := deepest.StackTrace()
		if len(trace) > maxStackDepth {
			trace = trace[:maxStackDepth]
		}

		frames := make([]string, len(trace))
		for i, frame := range trace {
			frames[i] = fmt.Sprintf("%n %s:%d", frame, frame, frame)
		}
		fields = append(fields, zap.Strings("stack", frames))
	}

	return fields
}
