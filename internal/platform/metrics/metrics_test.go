// Copyright (c) 2026 Darass. All rights reserved.

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zereight/2021-darass/internal/platform/metrics"
)

/*
TestCollector_Counters verifies that login/refresh outcomes land in the
registry under the expected names and labels.
*/
func TestCollector_Counters(t *testing.T) {
	collector := metrics.NewCollector(prometheus.NewRegistry())

	collector.RecordLogin("kakao", metrics.ResultSuccess)
	collector.RecordLogin("kakao", metrics.ResultFailure)
	collector.RecordLogin("naver", metrics.ResultSuccess)
	collector.RecordRefresh(metrics.ResultSuccess)
	collector.RecordHTTPStatus(http.StatusOK)
	collector.RecordRequestLatency(5 * time.Millisecond)

	recorder := httptest.NewRecorder()
	collector.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	exposition := recorder.Body.String()
	assert.Contains(t, exposition, `darass_login_total{provider="kakao",result="success"} 1`)
	assert.Contains(t, exposition, `darass_login_total{provider="kakao",result="failure"} 1`)
	assert.Contains(t, exposition, `darass_login_total{provider="naver",result="success"} 1`)
	assert.Contains(t, exposition, `darass_token_refresh_total{result="success"} 1`)
	assert.Contains(t, exposition, `darass_http_status_total{status_code="200"} 1`)
	assert.Contains(t, exposition, "darass_http_request_duration_seconds")
}

/*
TestCollector_Middleware verifies that wrapped handlers report their actual
status codes.
*/
func TestCollector_Middleware(t *testing.T) {
	collector := metrics.NewCollector(prometheus.NewRegistry())

	handler := collector.Middleware()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, recorder.Code)

	exposed := httptest.NewRecorder()
	collector.Handler().ServeHTTP(exposed, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, exposed.Body.String(), `darass_http_status_total{status_code="418"} 1`)
}
