package tools

import (
	"testing"
	"time"
)

type testSeconds int

func (s *testSeconds) SetDefault(raw string) error {
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*s = testSeconds(parsed / time.Second)

	return nil
}

func TestUnmarshalYamlAndBuildDefault(t *testing.T) {
	type innerArgs struct {
		Listen string `yaml:"listen" default:":8080"`
		Wait   time.Duration
	}

	type testArgs struct {
		Name     string        `yaml:"name" default:"sf4c"`
		PageSize int           `yaml:"page_size" default:"200"`
		Ratio    float64       `yaml:"ratio" default:"0.5"`
		Debug    bool          `yaml:"debug" default:"true"`
		Timeout  time.Duration `yaml:"timeout" default:"30s"`
		Seconds  testSeconds   `yaml:"seconds" default:"90s"`
		Inner    *innerArgs    `yaml:"inner"`
	}

	yamlData := `
name: "custom"
page_size: 50
`
	var args testArgs
	if err := UnmarshalYamlAndBuildDefault([]byte(yamlData), &args); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// yaml 已有值不能被默认值覆盖
	if args.Name != "custom" || args.PageSize != 50 {
		t.Fatal("yaml value should not be overwritten by default")
	}

	if args.Ratio != 0.5 || !args.Debug {
		t.Fatal("scalar default value failed")
	}
	if args.Timeout != 30*time.Second {
		t.Fatalf("duration default error, expect: 30s, actual: %s", args.Timeout)
	}
	if args.Seconds != 90 {
		t.Fatalf("defaulter interface error, expect: 90, actual: %d", args.Seconds)
	}

	if args.Inner == nil || args.Inner.Listen != ":8080" {
		t.Fatal("nested pointer default value failed")
	}
	if args.Inner.Wait != 0 {
		t.Fatal("field without default tag should keep zero value")
	}
}

func TestYesterday(t *testing.T) {
	now := time.Date(2024, 3, 8, 16, 5, 19, 123456789, time.UTC)
	got := Yesterday(now)

	if got.Format("2006-01-02 15:04:05") != "2024-03-07 16:05:19" {
		t.Fatalf("yesterday value error, actual: %s", got)
	}
	if got.Nanosecond() != 0 {
		t.Fatal("yesterday should be truncated to second")
	}
}

func TestTimestampedPath(t *testing.T) {
	got := TimestampedPath("output/positions.sql", "20240308T160519", "oracle")
	expect := "output/positions_20240308T160519_oracle.sql"
	if got != expect {
		t.Fatalf("output path error, expect: %s, actual: %s", expect, got)
	}

	// 基础名没有扩展名时直接追加
	got = TimestampedPath("output/positions", "20240308T160519", "postgres")
	expect = "output/positions_20240308T160519_postgres.sql"
	if got != expect {
		t.Fatalf("output path error, expect: %s, actual: %s", expect, got)
	}
}
