package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mohammed-shakir/geojson-geometry/internal/observability"
)

func assertHasMetricLine(t *testing.T, body, metric string, wantLabels ...string) {
	t.Helper()
	for ln := range strings.SplitSeq(body, "\n") {
		if !strings.HasPrefix(ln, metric+"{") {
			continue
		}
		ok := true
		for _, s := range wantLabels {
			if !strings.Contains(ln, s) {
				ok = false
				break
			}
		}
		if ok && (len(ln) > 0 && ln[len(ln)-1] >= '0' && ln[len(ln)-1] <= '9') {
			return
		}
	}
	t.Fatalf("expected a %s line with labels %v; got:\n%s", metric, wantLabels, body)
}

func Test_AppMetrics_CustomRegistry_Smoke(t *testing.T) {
	p := Init(Config{Build: BuildInfo{Version: "test"}})
	m := observability.New(p.Registerer())

	m.ObserveHTTP("POST", "/v1/decode", 200, 2*time.Millisecond)
	m.ObserveDecode("3d", "features", time.Millisecond)
	m.CacheHit("lru")
	m.CacheMiss("redis")
	m.ObserveCacheOp("get", nil, time.Millisecond)
	m.Ingested("duplicate")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, req)
	body := rr.Body.String()

	assertHasMetricLine(t, body, "http_requests_total", `route="/v1/decode"`, `status="200"`)
	assertHasMetricLine(t, body, "geojson_decode_total", `dimension="3d"`, `kind="features"`)
	assertHasMetricLine(t, body, "cache_results_total", `tier="lru"`, `outcome="hit"`)
	assertHasMetricLine(t, body, "cache_op_duration_seconds_count", `op="get"`, `result="ok"`)
	assertHasMetricLine(t, body, "ingest_messages_total", `outcome="duplicate"`)
}
