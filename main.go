package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/configs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/core"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/tools"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/tools/logs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	filePath  = flag.String("f", "config.yaml", "Specify the config file")
	once      = flag.Bool("once", false, "Run a single sync and exit")
	startDate = flag.String("start", "", "Sync start date, YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS")
	endDate   = flag.String("end", "", "Sync end date, YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS")
)

func main() {
	flag.Parse()

	content, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalln(err)
	}

	var conf configs.SyncConfig
	if err := tools.UnmarshalYamlAndBuildDefault(content, &conf); err != nil {
		log.Fatalln(err)
	}
	conf.ApplyEnv()
	if err := conf.Validate(); err != nil {
		log.Fatalln(err)
	}

	zap.ReplaceGlobals(logs.NewLogger(zapcore.InfoLevel))

	engine, err := core.NewCore(&conf)
	if err != nil {
		log.Fatalln(err)
	}

	if *once {
		runOnce(engine)
		return
	}

	go waitForSignal(engine)
	if err := engine.Run(); err != nil {
		log.Fatalln(err)
	}
}

// runOnce 单次同步模式，结果以 json 打印到标准输出
func runOnce(engine *core.Core) {
	start, err := parseDateFlag(*startDate)
	if err != nil {
		log.Fatalln(err)
	}
	end, err := parseDateFlag(*endDate)
	if err != nil {
		log.Fatalln(err)
	}

	result, err := engine.RunOnce(start, end)
	if err != nil {
		log.Fatalln(err)
	}

	encoded, _ := json.Marshal(result)
	fmt.Println(string(encoded))
}

func parseDateFlag(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := types.ParseSyncDate(raw)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}

// waitForSignal 等待退出信号后优雅关闭
func waitForSignal(engine *core.Core) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zap.L().Info("收到退出信号", zap.String("signal", sig.String()))
	engine.Stop()
}
