package logs

import (
	"encoding/json"
	sysErr "errors"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"strings"
	"testing"
	"time"
)

func TestParseErr(t *testing.T) {
	err := errors.Wrap(errors.New("this is test err"), "with message")

	fields := ParseErr(err)
	if len(fields) != 2 {
		t.Fatalf("field count error, expect: 2, actual: %d", len(fields))
	}

	var stack zapcore.Field
	for _, field := range fields {
		if field.Key == "stack" {
			stack = field
		}
	}
	if stack.Key == "" {
		t.Fatal("stack field missing for pkg/errors error")
	}
}

func TestParseErr_NoStack(t *testing.T) {
	fields := ParseErr(sysErr.New("plain error"))
	if len(fields) != 1 {
		t.Fatalf("plain error should only produce error field, actual: %d",
			len(fields))
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(zapcore.InfoLevel)
	if logger == nil {
		t.Fatal("logger should not be nil")
	}
	logger.Info("logger smoke test")
	_ = logger.Sync()
}

func TestZapJsonEncoderDropsErrorVerbose(t *testing.T) {
	encoder := NewZapJsonEncoder(zap.NewProductionEncoderConfig())
	entry := zapcore.Entry{
		Level:   zapcore.ErrorLevel,
		Time:    time.Unix(1700000000, 0),
		Message: "sync failed",
	}

	buf, err := encoder.EncodeEntry(entry, ParseErr(errors.Wrap(sysErr.New("connection reset"), "fetch page failed")))
	if err != nil {
		t.Fatal(err)
	}

	line := buf.String()
	if strings.Contains(line, "errorVerbose") {
		t.Fatalf("errorVerbose should be dropped, actual: %s", line)
	}
	if !strings.Contains(line, `"error":"fetch page failed: connection reset"`) {
		t.Fatalf("error message missing, actual: %s", line)
	}
	if !strings.Contains(line, `"stack":[`) {
		t.Fatalf("stack frames missing, actual: %s", line)
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("log line should be valid json, actual: %s", line)
	}
}
