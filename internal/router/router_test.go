package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cat-lifecycle/internal/router"
	"cat-lifecycle/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := store.New(store.Options{Now: func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }})
	ts := httptest.NewServer(router.NewRouter(router.Options{Store: s, AuthVerifier: nil}))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t)

	st, body := get(t, ts.URL+"/health")
	if st != http.StatusOK || body != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", st, body)
	}
}

func TestHTTP_MetricsCountRequests(t *testing.T) {
	ts := newTestServer(t)

	get(t, ts.URL+"/breeds")

	st, body := get(t, ts.URL+"/metrics")
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(body, "catlog_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	ts := newTestServer(t)

	st, body := get(t, ts.URL+"/swagger/doc.json")
	if st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
	if !strings.Contains(body, "/dashboard") {
		t.Fatalf("expected /dashboard in swagger doc")
	}
}

func TestHTTP_AccountRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t)

	st, _ := get(t, ts.URL+"/dashboard")
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", st)
	}

	res, err := http.Post(ts.URL+"/auth/demo", "application/json", nil)
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	res.Body.Close()

	st, _ = get(t, ts.URL+"/dashboard")
	if st != http.StatusOK {
		t.Fatalf("expected 200 dashboard in demo, got %d", st)
	}
}
