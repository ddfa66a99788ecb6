package cyync

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCyync struct {
	mu    sync.Mutex
	auth  []string
	roles []string
}

// handler answers asset searches for "host-1" with one high-risk asset and
// every other search with no results.
func (f *fakeCyync) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.roles = append(f.roles, r.Header.Get("Role-ID"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if strings.Contains(r.URL.Path, "/assets") && r.URL.Query().Get("search") == "host-1" {
		_, _ = w.Write([]byte(`{"results":[{"id":"a1","name":"host-1","riskScore":8.5}]}`))
		return
	}
	_, _ = w.Write([]byte(`{"results":[]}`))
}

func newFake(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"no url", []Option{WithAccessToken("tok")}, "url: * Required"},
		{"no token", []Option{WithURL("https://cyync.example")}, "accessToken: * Required"},
		{"trailing slash", []Option{WithURL("https://cyync.example/"), WithAccessToken("tok")}, "Your Url must not end with a /"},
		{"no scheme", []Option{WithURL("cyync.example"), WithAccessToken("tok")}, "including the schema"},
		{
			"unknown scope",
			[]Option{WithURL("https://cyync.example"), WithAccessToken("tok"), WithSearchScopes("assets", "alerts")},
			"Invalid search scopes: alerts.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOptions)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClient_Lookup(t *testing.T) {
	fake := &fakeCyync{}
	srv := newFake(t, fake.handler)

	client, err := New(
		WithURL(srv.URL),
		WithAccessToken("tok"),
		WithRoleID("analyst"),
		WithWorkspaces("w1"),
		WithSearchScopes("assets", "tasks"),
		WithConcurrency(2),
	)
	require.NoError(t, err)

	results, err := client.Lookup(context.Background(), []Entity{
		{Value: "host-1", Types: []string{"domain"}},
		{Value: "nomatch", Types: []string{"domain"}},
	}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "host-1", results[0].Entity.Value)
	require.NotNil(t, results[0].Data)
	assert.Equal(t, []string{"Assets: 1", "High Risk: 1"}, results[0].Data.Summary)
	require.NotNil(t, results[0].Data.Details.Assets)
	assert.Equal(t, 1, results[0].Data.Details.Assets.Count)

	assert.Equal(t, "nomatch", results[1].Entity.Value)
	assert.Nil(t, results[1].Data)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.auth, 4)
	for i := range fake.auth {
		assert.Equal(t, "Bearer tok", fake.auth[i])
		assert.Equal(t, "analyst", fake.roles[i])
	}
}

func TestClient_LookupFailure(t *testing.T) {
	srv := newFake(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})

	client, err := New(WithURL(srv.URL), WithAccessToken("tok"), WithWorkspaces("w1"))
	require.NoError(t, err)

	results, err := client.Lookup(context.Background(), []Entity{{Value: "8.8.8.8", Types: []string{"IPv4"}}}, Options{})
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrTransport)

	le, ok := AsLookupError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, le.Status)
	assert.Equal(t, "Request failed - (401)| token expired", le.Detail)
}

func TestClient_LookupUnknownScope(t *testing.T) {
	srv := newFake(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	client, err := New(WithURL(srv.URL), WithAccessToken("tok"), WithWorkspaces("w1"))
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), []Entity{{Value: "x"}}, Options{
		SearchScopes: SearchScopesOf("alerts"),
	})
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestClient_Validate(t *testing.T) {
	client, err := New(WithURL("https://cyync.example"), WithAccessToken("tok"))
	require.NoError(t, err)

	assert.Empty(t, client.Validate(Options{}))

	errs := client.Validate(Options{SearchScopes: SearchScopesOf("pages", "alerts")})
	require.Len(t, errs, 1)
	assert.Equal(t, "searchScopes", errs[0].Key)
}

func TestClient_Observability(t *testing.T) {
	srv := newFake(t, (&fakeCyync{}).handler)
	reg := prometheus.NewRegistry()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := New(
		WithURL(srv.URL),
		WithAccessToken("tok"),
		WithWorkspaces("w1"),
		WithPrometheus(reg),
		WithLogger(logger),
	)
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), []Entity{{Value: "host-1"}, {Value: "other"}}, Options{})
	require.NoError(t, err)

	// A second client on the same registry reuses the collectors.
	second, err := New(WithURL(srv.URL), WithAccessToken("tok"), WithWorkspaces("w1"), WithPrometheus(reg))
	require.NoError(t, err)
	_, err = second.Lookup(context.Background(), []Entity{{Value: "other"}}, Options{})
	require.NoError(t, err)

	ops := client.obs.metrics.operations
	assert.InDelta(t, 2, testutil.ToFloat64(ops.WithLabelValues("lookup", "ok")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(client.obs.metrics.entities), 0)

	out := logs.String()
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, "op=lookup")
	assert.Contains(t, out, "matched=1")
}

func TestClient_Health(t *testing.T) {
	srv := newFake(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	client, err := New(WithURL(srv.URL), WithAccessToken("tok"))
	require.NoError(t, err)

	status := client.Health(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, map[string]string{"cyync": "ok"}, status.Checks)

	down := newFake(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client, err = New(WithURL(down.URL), WithAccessToken("tok"))
	require.NoError(t, err)

	status = client.Health(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "error", status.Checks["cyync"])
}

func TestScopes(t *testing.T) {
	values := make([]string, 0, 4)
	for _, sc := range Scopes() {
		values = append(values, sc.Value)
	}
	assert.Equal(t, []string{"assets", "forms", "pages", "tasks"}, values)
}

func TestRegisterOrReuse_IncompatibleType(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "dup_total", Help: "h"})
	require.NoError(t, reg.Register(counter))

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dup_total", Help: "h"}, []string{"a"})
	err := registerOrReuse(reg, &vec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyync:")
	assert.False(t, errors.Is(err, ErrInvalidOptions))
}
