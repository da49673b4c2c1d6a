package server

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"investment_projection/pkg/api/middleware"
	"investment_projection/pkg/api/projection"
	"investment_projection/pkg/api/web"
	"investment_projection/pkg/core/logger"
	coreProjection "investment_projection/pkg/core/projection"
	"investment_projection/pkg/core/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticUpstream string

func (s staticUpstream) StreamPrompt(ctx context.Context, agentType string, p string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield(string(s), nil)
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tmpl, err := prompt.New("t", "{monthly_contribution_amount} {risk_tolerance} {interests}", prompt.ProjectionPlaceholders)
	require.NoError(t, err)
	gen, err := coreProjection.NewGenerator(tmpl, staticUpstream(`{"years":[1,2,3]}`), time.Second)
	require.NoError(t, err)
	wh, err := web.NewHandler(ProjectionPath)
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		ProjectionHandler: projection.NewHandler(gen, logger.Nop(), 0),
		WebHandler:        wh,
		Log:               logger.Nop(),
	})
}

func TestRouter(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "healthy", health["status"])
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	resp, err = http.Post(srv.URL+ProjectionPath, "application/json",
		strings.NewReader(`{"monthly_contribution_amount": 100, "risk_tolerance": "High", "interests": "ai"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"years":[1,2,3]}`, string(body))

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestServer_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(ln.Addr().String(), newTestRouter(t), time.Second, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
