package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDo_ReturnsHeadersAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("missing extra header")
		}
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["name"] != "치즈" {
			t.Errorf("unexpected body: %v", in)
		}
		w.Header().Set("Content-Range", "0-0/7")
		_, _ = w.Write([]byte(`[{"id":"x"}]`))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, 0)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	var out []map[string]string
	res, err := c.Do(context.Background(), http.MethodPost, "rest/v1/cats", map[string]string{"X-Test": "1"}, json.RawMessage(`{"name":"치즈"}`), &out)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if res.Header.Get("Content-Range") != "0-0/7" {
		t.Fatalf("content-range not returned: %v", res.Header)
	}
	if len(out) != 1 || out[0]["id"] != "x" {
		t.Fatalf("unexpected decode: %v", out)
	}
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(` {"message":"bad"} `))
	}))
	defer srv.Close()

	c, _ := NewWithBaseURL(srv.URL, 0)
	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusBadRequest || he.Body != `{"message":"bad"}` {
		t.Fatalf("unexpected error: %+v", he)
	}
}

func TestResolveURL_RequiresBaseForRelative(t *testing.T) {
	c := New(0)
	if err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil); err == nil {
		t.Fatalf("expected error for relative path without base url")
	}
}
