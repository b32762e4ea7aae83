package core

import (
	"encoding/json"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/configs"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/tools"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"github.com/gin-gonic/gin"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestCore(t *testing.T, baseUrl string) *Core {
	gin.SetMode(gin.TestMode)

	conf := new(configs.SyncConfig)
	if err := tools.UnmarshalYamlAndBuildDefault([]byte("api: {username: u, password: p}"), conf); err != nil {
		t.Fatal(err)
	}
	conf.Api.BaseUrl = baseUrl
	conf.Api.PageSize = 2
	conf.Api.RetryBaseDelay = configs.Duration(time.Millisecond)
	conf.Output.BasePath = filepath.Join(t.TempDir(), "positions.sql")

	engine, err := NewCore(conf)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { engine.h.pool.Release() })

	return engine
}

func postSync(engine *Core, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, engine.conf.Server.SyncPath, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	engine.srv.Handler.ServeHTTP(recorder, req)

	return recorder
}

func Test_core_syncHandle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"d": map[string]interface{}{"results": []types.PositionRecord{
				{"code": "X1", "department": "ENG-Core"},
			}},
		})
	}))
	defer server.Close()
	engine := newTestCore(t, server.URL)

	recorder := postSync(engine, `{"start_date":"2024-03-01","end_date":"2024-03-08T16:05:19"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status wrong, expect: 200, actual: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var result types.SyncResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Fetched != 1 || result.Matched != 1 || len(result.Files) != 2 {
		t.Fatalf("result wrong, actual: %+v", result)
	}
	if result.RunId == "" {
		t.Fatal("run id must be assigned")
	}
}

// 空请求体等价于缺省参数 (昨天以来)
func Test_core_syncHandle_emptyBody(t *testing.T) {
	var filter string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter = r.URL.Query().Get("$filter")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"d": map[string]interface{}{"results": []types.PositionRecord{}},
		})
	}))
	defer server.Close()
	engine := newTestCore(t, server.URL)

	recorder := postSync(engine, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status wrong, expect: 200, actual: %d, body: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(filter, "lastModifiedDateTime ge datetime'") {
		t.Fatalf("default filter must cover yesterday, actual: %s", filter)
	}
}

// 日期参数非法时直接拒绝，不允许发起任何上游请求
func Test_core_syncHandle_invalidDate(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()
	engine := newTestCore(t, server.URL)

	recorder := postSync(engine, `{"start_date":"03/08/2024"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status wrong, expect: 400, actual: %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "invalid date") {
		t.Fatalf("response must describe the error, actual: %s", recorder.Body.String())
	}
	if requests != 0 {
		t.Fatalf("invalid params must not reach upstream, actual requests: %d", requests)
	}
}

func Test_core_syncHandle_fetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("invalid credentials"))
	}))
	defer server.Close()
	engine := newTestCore(t, server.URL)

	recorder := postSync(engine, `{"start_date":"2024-03-01"}`)
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("status wrong, expect: 502, actual: %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "status: 403") {
		t.Fatalf("response must carry upstream status, actual: %s", recorder.Body.String())
	}
}

func Test_core_healthHandle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()
	engine := newTestCore(t, server.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	engine.srv.Handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status wrong, expect: 200, actual: %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), version) {
		t.Fatalf("health response must carry version, actual: %s", recorder.Body.String())
	}
}
